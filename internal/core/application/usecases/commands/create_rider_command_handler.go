package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/pkg/errs"
)

// CreateRiderCommandHandler lets an admin register riders. Phones are unique
// among riders.
type CreateRiderCommandHandler struct {
	uowFactory RiderUoWFactory
	clock      Clock
}

func NewCreateRiderCommandHandler(uowFactory RiderUoWFactory, clock Clock) CreateRiderCommandHandler {
	return CreateRiderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CreateRiderCommandHandler) Handle(ctx context.Context, cmd CreateRiderCommand) (*rider.Rider, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if cmd.Actor().Role != kernel.RoleAdmin {
		return nil, errs.NewForbiddenError("create riders", cmd.Actor().Role.String())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()

	_, err := riderRepo.GetByPhone(ctx, cmd.Phone())
	switch {
	case err == nil:
		return nil, errs.NewValueIsInvalidErrorWithCause("phone", errors.New("a rider with this phone already exists"))
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	r, err := rider.NewRider(kernel.NewUUID(), cmd.Name(), cmd.Phone(), cmd.Password(), h.clock())
	if err != nil {
		return nil, err
	}

	if err = riderRepo.Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
