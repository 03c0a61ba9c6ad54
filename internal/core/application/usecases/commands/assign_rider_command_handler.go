package commands

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// AssignRiderCommandHandler binds riders to orders and moves the riders' order
// counts with them. Reassignment is allowed until the order is picked up.
type AssignRiderCommandHandler struct {
	uowFactory DeliveryUoWFactory
	assigner   services.DeliveryAssigner
	clock      Clock
}

func NewAssignRiderCommandHandler(
	uowFactory DeliveryUoWFactory,
	assigner services.DeliveryAssigner,
	clock Clock,
) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		clock:      clock,
	}
}

func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if actor := cmd.Actor(); !actor.Role.IsStaff() {
		return nil, errs.NewForbiddenError("assign riders", actor.Role.String())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	riderRepo := uow.RiderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	ids := []kernel.UUID{cmd.RiderID()}
	snap := o.Rider()
	replacing := snap != nil && o.HoldsRider() && !snap.ID.IsEqual(cmd.RiderID())
	if replacing {
		ids = append(ids, snap.ID)
	}

	locked, err := lockRiders(ctx, riderRepo, ids...)
	if err != nil {
		return nil, err
	}
	next := locked[cmd.RiderID()]

	if o.IsAssignedTo(next.ID()) && o.HoldsRider() {
		return o, nil
	}

	var current *rider.Rider
	if replacing {
		current = locked[snap.ID]
	}

	if err = h.assigner.Assign(cmd.Actor(), o, next, current, h.clock()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = riderRepo.Update(ctx, next); err != nil {
		return nil, err
	}

	if current != nil {
		if err = riderRepo.Update(ctx, current); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
