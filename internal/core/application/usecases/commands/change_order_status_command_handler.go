package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler applies status transitions. The order is
// written with a compare-and-set on its version, so of two sessions racing on
// the same order only one commits; the other gets errs.TransactionConflictError.
type ChangeOrderStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	assigner   services.DeliveryAssigner
	clock      Clock
}

func NewChangeOrderStatusCommandHandler(
	uowFactory DeliveryUoWFactory,
	assigner services.DeliveryAssigner,
	clock Clock,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		clock:      clock,
	}
}

// Handle returns the order as it was committed.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
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

	var assigned *rider.Rider
	if snap := o.Rider(); snap != nil && o.HoldsRider() {
		if assigned, err = riderRepo.GetForUpdate(ctx, snap.ID); err != nil {
			return nil, err
		}
	}

	if err = h.assigner.Transition(cmd.Actor(), o, cmd.To(), cmd.Reason(), assigned, h.clock()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if assigned != nil && !o.HoldsRider() {
		if err = riderRepo.Update(ctx, assigned); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
