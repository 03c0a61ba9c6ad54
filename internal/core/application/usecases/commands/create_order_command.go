package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is a line item as sent by the client, prices in paise.
type OrderLine struct {
	ProductID       string
	Name            string
	UnitPrice       int64
	DiscountedPrice *int64
	Quantity        int
	Unit            string
}

// CreateOrderCommand places an order for userID. Delivery orders use the
// address with addressID, or the user's default address when it is nil.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	userID    string
	items     []order.Item
	method    order.DeliveryMethod
	addressID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	actor kernel.Actor,
	userID string,
	lines []OrderLine,
	method order.DeliveryMethod,
	addressID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		actor:  actor,
		method: method,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Role.Validate(),
		cmd.setUserID(userID),
		cmd.setItems(lines),
		method.Validate(),
		cmd.setAddressID(addressID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) UserID() string {
	return c.userID
}

func (c CreateOrderCommand) Items() []order.Item {
	out := make([]order.Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c CreateOrderCommand) Method() order.DeliveryMethod {
	return c.method
}

func (c CreateOrderCommand) AddressID() *kernel.UUID {
	return c.addressID
}

func (c *CreateOrderCommand) setUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errs.NewValueIsRequiredError("user id")
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setItems(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(lines))
	var problems []error
	for i, line := range lines {
		var discounted *kernel.Money
		if line.DiscountedPrice != nil {
			d := kernel.Money(*line.DiscountedPrice)
			discounted = &d
		}

		item, err := order.NewItem(line.ProductID, line.Name, kernel.Money(line.UnitPrice), discounted, line.Quantity, line.Unit)
		if err != nil {
			problems = append(problems, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}

	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setAddressID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	a := *id
	c.addressID = &a
	return nil
}
