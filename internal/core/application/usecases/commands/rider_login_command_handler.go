package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// PasswordProvider tags sessions minted from rider credentials.
const PasswordProvider = "password"

type RiderLoginResult struct {
	SessionToken string
	RiderID      kernel.UUID
	Name         string
}

// RiderLoginCommandHandler authenticates riders. An unknown phone and a wrong
// password are indistinguishable to the caller.
type RiderLoginCommandHandler struct {
	uowFactory RiderUoWFactory
	verifier   ports.IdentityVerifier
}

func NewRiderLoginCommandHandler(uowFactory RiderUoWFactory, verifier ports.IdentityVerifier) RiderLoginCommandHandler {
	return RiderLoginCommandHandler{uowFactory: uowFactory, verifier: verifier}
}

func (h RiderLoginCommandHandler) Handle(ctx context.Context, cmd RiderLoginCommand) (RiderLoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return RiderLoginResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RiderLoginResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RiderRepository().GetByPhone(ctx, cmd.Phone())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return RiderLoginResult{}, rider.ErrInvalidCredentials
		}
		return RiderLoginResult{}, err
	}

	if err = r.CheckPassword(cmd.Password()); err != nil {
		return RiderLoginResult{}, err
	}

	token, err := h.verifier.MintSession(ctx, r.ID().String(), ports.SessionClaims{
		Role:     kernel.RoleRider.String(),
		Phone:    r.Phone().String(),
		Provider: PasswordProvider,
	})
	if err != nil {
		return RiderLoginResult{}, err
	}

	return RiderLoginResult{SessionToken: token, RiderID: r.ID(), Name: r.Name()}, nil
}
