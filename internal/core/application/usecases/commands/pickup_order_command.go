package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrPickupOrderCommandIsNotConstructed = errors.New(
		"PickupOrderCommand must be created via NewPickupOrderCommand constructor",
	)
	ErrDeliverOrderCommandIsNotConstructed = errors.New(
		"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
	)
)

// PickupOrderCommand is the assigned rider collecting an order from the shop.
type PickupOrderCommand struct {
	riderID kernel.UUID
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewPickupOrderCommand(riderID, orderID kernel.UUID) (PickupOrderCommand, error) {
	if err := errors.Join(riderID.Validate(), orderID.Validate()); err != nil {
		return PickupOrderCommand{}, err
	}
	return PickupOrderCommand{riderID: riderID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c PickupOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickupOrderCommandIsNotConstructed)
}

func (c PickupOrderCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c PickupOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliverOrderCommand is the assigned rider handing an order to the customer.
type DeliverOrderCommand struct {
	riderID kernel.UUID
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewDeliverOrderCommand(riderID, orderID kernel.UUID) (DeliverOrderCommand, error) {
	if err := errors.Join(riderID.Validate(), orderID.Validate()); err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{riderID: riderID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c DeliverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
