package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Item is a line item copied onto the order at creation time. Later catalog
// edits never change it.
type Item struct {
	productID       string
	name            string
	unitPrice       kernel.Money
	discountedPrice *kernel.Money
	quantity        int
	unit            string
}

func NewItem(
	productID, name string,
	unitPrice kernel.Money,
	discountedPrice *kernel.Money,
	quantity int,
	unit string,
) (Item, error) {
	var item Item
	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setPrices(unitPrice, discountedPrice),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}
	item.unit = strings.TrimSpace(unit)
	return item, nil
}

func (i Item) ProductID() string {
	return i.productID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// DiscountedPrice returns nil when the item was sold at its base price.
func (i Item) DiscountedPrice() *kernel.Money {
	if i.discountedPrice == nil {
		return nil
	}
	p := *i.discountedPrice
	return &p
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Unit() string {
	return i.unit
}

// EffectivePrice is the discounted price when present, otherwise the base price.
func (i Item) EffectivePrice() kernel.Money {
	if i.discountedPrice != nil {
		return *i.discountedPrice
	}
	return i.unitPrice
}

func (i Item) LineTotal() kernel.Money {
	return i.EffectivePrice().Times(i.quantity)
}

func (i Item) LineSavings() kernel.Money {
	return i.unitPrice.Sub(i.EffectivePrice()).Times(i.quantity)
}

func (i *Item) setProductID(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs.NewValueIsRequiredError("product id")
	}
	i.productID = v
	return nil
}

func (i *Item) setName(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = v
	return nil
}

func (i *Item) setPrices(unit kernel.Money, discounted *kernel.Money) error {
	if unit < 0 {
		return errs.NewValueIsOutOfRangeError("unit price", int64(unit), 0, "unbounded")
	}
	if discounted != nil {
		if *discounted < 0 || *discounted > unit {
			return errs.NewValueIsOutOfRangeError("discounted price", int64(*discounted), 0, int64(unit))
		}
		d := *discounted
		i.discountedPrice = &d
	}
	i.unitPrice = unit
	return nil
}

func (i *Item) setQuantity(v int) error {
	if v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", v))
	}
	i.quantity = v
	return nil
}

// DeliveryAddress is the address snapshot stored on a delivery order.
type DeliveryAddress struct {
	Label        string
	FullAddress  string
	Coordinates  *kernel.Coordinates
	Instructions string
}

func (a DeliveryAddress) Validate() error {
	if strings.TrimSpace(a.FullAddress) == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	if a.Coordinates != nil {
		return a.Coordinates.Validate()
	}
	return nil
}

// RiderSnapshot holds the rider's identity as it was at assignment time.
type RiderSnapshot struct {
	ID    kernel.UUID
	Name  string
	Phone string
}

func (r RiderSnapshot) Validate() error {
	if err := r.ID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Name) == "" {
		return errs.NewValueIsRequiredError("rider name")
	}
	return nil
}
