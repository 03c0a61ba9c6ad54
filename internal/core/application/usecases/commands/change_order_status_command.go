package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order to a new status on behalf of actor.
// Whether the actor may do so is decided by the order itself.
type ChangeOrderStatusCommand struct {
	actor   kernel.Actor
	orderID kernel.UUID
	to      order.Status
	reason  string
	guard   guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(actor kernel.Actor, orderID kernel.UUID, to order.Status, reason string) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(actor.Role.Validate(), orderID.Validate(), to.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		to:      to,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) To() order.Status {
	return c.to
}

func (c ChangeOrderStatusCommand) Reason() string {
	return c.reason
}
