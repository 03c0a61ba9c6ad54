package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// PickupOrderCommandHandler moves an order out for delivery. Only the assigned
// rider may do so; anyone else gets errs.NotAssignedError whatever the status.
type PickupOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewPickupOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) PickupOrderCommandHandler {
	return PickupOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h PickupOrderCommandHandler) Handle(ctx context.Context, cmd PickupOrderCommand) (*order.Order, error) {
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

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Pickup(cmd.RiderID(), h.clock()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// DeliverOrderCommandHandler completes a delivery and frees the rider. The
// assignment is checked before the rider is loaded, so a rider that is not on
// the order gets errs.NotAssignedError even when its id is unknown.
type DeliverOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
	assigner   services.DeliveryAssigner
	clock      Clock
}

func NewDeliverOrderCommandHandler(
	uowFactory DeliveryUoWFactory,
	assigner services.DeliveryAssigner,
	clock Clock,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{uowFactory: uowFactory, assigner: assigner, clock: clock}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.Order, error) {
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

	if !o.IsAssignedTo(cmd.RiderID()) {
		return nil, errs.NewNotAssignedError(o.ID().String(), cmd.RiderID().String())
	}

	r, err := riderRepo.GetForUpdate(ctx, cmd.RiderID())
	if err != nil {
		return nil, err
	}

	if err = h.assigner.Deliver(o, r, h.clock()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
