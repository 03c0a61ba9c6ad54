package commands

import (
	"context"
)

// RecountRiderLoadCommandHandler repairs drift in riders' active order
// counters. It returns how many riders were corrected.
type RecountRiderLoadCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewRecountRiderLoadCommandHandler(uowFactory DeliveryUoWFactory) RecountRiderLoadCommandHandler {
	return RecountRiderLoadCommandHandler{uowFactory: uowFactory}
}

func (h RecountRiderLoadCommandHandler) Handle(ctx context.Context, cmd RecountRiderLoadCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()

	// Locking the riders first makes assignments that are still in flight
	// finish before the orders are counted.
	riders, err := riderRepo.GetAllForUpdate(ctx)
	if err != nil {
		return 0, err
	}

	counts, err := uow.OrderRepository().CountActiveByRider(ctx)
	if err != nil {
		return 0, err
	}

	corrected := 0
	for _, r := range riders {
		want := counts[r.ID()]
		if r.ActiveOrders() == want {
			continue
		}
		if err = r.ResetActiveOrders(want); err != nil {
			return 0, err
		}
		if err = riderRepo.Update(ctx, r); err != nil {
			return 0, err
		}
		corrected++
	}

	if corrected == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return corrected, nil
}
