package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Money is an amount in paise. Prices, totals and savings are kept in integer
// minor units so a persisted total always equals the sum recomputed from its
// line items.
type Money int64

// NewMoney rejects negative amounts.
func NewMoney(paise int64) (Money, error) {
	if paise < 0 {
		return 0, errs.NewValueIsOutOfRangeError("amount", paise, 0, "unbounded")
	}
	return Money(paise), nil
}

func (m Money) Paise() int64 {
	return int64(m)
}

func (m Money) Add(other Money) Money {
	return m + other
}

func (m Money) Sub(other Money) Money {
	return m - other
}

func (m Money) Times(quantity int) Money {
	return m * Money(quantity)
}

// String formats the amount in rupees, e.g. "₹120.50".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, v/100, v%100)
}
