package commands

import (
	"context"

	"storefront/internal/core/domain/model/counter"
	"storefront/internal/pkg/errs"
)

// NextOrderNumberCommandHandler allocates an order number in its own transaction.
type NextOrderNumberCommandHandler struct {
	uowFactory CounterUoWFactory
	allocator  SequenceAllocator
}

func NewNextOrderNumberCommandHandler(uowFactory CounterUoWFactory, allocator SequenceAllocator) NextOrderNumberCommandHandler {
	return NextOrderNumberCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
	}
}

// Handle returns the formatted number, e.g. DKN-004. Any failure is a
// errs.SequenceAllocationError and no number is consumed.
func (h NextOrderNumberCommandHandler) Handle(ctx context.Context, cmd NextOrderNumberCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	number, err := h.allocator.NextOrderNumber(ctx, uow.CounterRepository(), cmd.At())
	if err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", errs.NewSequenceAllocationError(string(counter.Orders), h.allocator.DayKey(cmd.At()), err)
	}

	return number, nil
}
