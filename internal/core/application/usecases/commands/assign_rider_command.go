package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand binds a rider to a delivery order.
type AssignRiderCommand struct {
	actor   kernel.Actor
	orderID kernel.UUID
	riderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewAssignRiderCommand(actor kernel.Actor, orderID, riderID kernel.UUID) (AssignRiderCommand, error) {
	if err := errors.Join(actor.Role.Validate(), orderID.Validate(), riderID.Validate()); err != nil {
		return AssignRiderCommand{}, err
	}

	return AssignRiderCommand{
		actor:   actor,
		orderID: orderID,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

func (c AssignRiderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c AssignRiderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}
