package address

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// Label classifies an address in the user's address book.
type Label string

const (
	LabelHome  Label = "Home"
	LabelWork  Label = "Work"
	LabelOther Label = "Other"
)

func ParseLabel(s string) (Label, error) {
	l := Label(s)
	if err := l.Validate(); err != nil {
		return "", err
	}
	return l, nil
}

func (l Label) Validate() error {
	switch l {
	case LabelHome, LabelWork, LabelOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("label", fmt.Errorf("%q is not one of Home, Work, Other", string(l)))
	}
}

var (
	ErrFullAddressIsRequired   = errs.NewValueIsRequiredError("full address")
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")
)

// Address is an entry of a user's address book.
type Address struct {
	id           kernel.UUID
	userID       string
	label        Label
	fullAddress  string
	coordinates  *kernel.Coordinates
	instructions string
	isDefault    bool
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

func NewAddress(
	id kernel.UUID,
	userID string,
	label Label,
	fullAddress string,
	coordinates *kernel.Coordinates,
	instructions string,
	now time.Time,
) (*Address, error) {
	return RestoreAddress(id, userID, label, fullAddress, coordinates, instructions, false, now.UTC())
}

func RestoreAddress(
	id kernel.UUID,
	userID string,
	label Label,
	fullAddress string,
	coordinates *kernel.Coordinates,
	instructions string,
	isDefault bool,
	createdAt time.Time,
) (*Address, error) {
	a := &Address{
		instructions: strings.TrimSpace(instructions),
		isDefault:    isDefault,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setUserID(userID),
		label.Validate(),
		a.setFullAddress(fullAddress),
		a.setCoordinates(coordinates),
	); err != nil {
		return nil, err
	}

	a.label = label
	return a, nil
}

func (a *Address) Validate() error {
	if a == nil {
		return ErrAddressIsNotConstructed
	}
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a *Address) ID() kernel.UUID {
	return a.id
}

func (a *Address) UserID() string {
	return a.userID
}

func (a *Address) Label() Label {
	return a.label
}

func (a *Address) FullAddress() string {
	return a.fullAddress
}

func (a *Address) Coordinates() *kernel.Coordinates {
	if a.coordinates == nil {
		return nil
	}
	c := *a.coordinates
	return &c
}

func (a *Address) Instructions() string {
	return a.instructions
}

func (a *Address) IsDefault() bool {
	return a.isDefault
}

func (a *Address) CreatedAt() time.Time {
	return a.createdAt
}

// Snapshot copies the address for storage on an order.
func (a *Address) Snapshot() order.DeliveryAddress {
	return order.DeliveryAddress{
		Label:        string(a.label),
		FullAddress:  a.fullAddress,
		Coordinates:  a.Coordinates(),
		Instructions: a.instructions,
	}
}

func (a *Address) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Address) setUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errs.NewValueIsRequiredError("user id")
	}
	a.userID = userID
	return nil
}

func (a *Address) setFullAddress(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return ErrFullAddressIsRequired
	}
	a.fullAddress = v
	return nil
}

func (a *Address) setCoordinates(c *kernel.Coordinates) error {
	if c == nil {
		return nil
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cc := *c
	a.coordinates = &cc
	return nil
}
