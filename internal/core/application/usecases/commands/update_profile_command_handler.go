package commands

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"
)

type UpdateProfileCommandHandler struct {
	uowFactory UserUoWFactory
	clock      Clock
}

func NewUpdateProfileCommandHandler(uowFactory UserUoWFactory, clock Clock) UpdateProfileCommandHandler {
	return UpdateProfileCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h UpdateProfileCommandHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return updateUser(ctx, h.uowFactory, cmd.Actor().ID, func(u *user.User) error {
		return u.UpdateProfile(cmd.DisplayName(), h.clock())
	})
}

type ChangeUserRoleCommandHandler struct {
	uowFactory UserUoWFactory
	clock      Clock
}

func NewChangeUserRoleCommandHandler(uowFactory UserUoWFactory, clock Clock) ChangeUserRoleCommandHandler {
	return ChangeUserRoleCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ChangeUserRoleCommandHandler) Handle(ctx context.Context, cmd ChangeUserRoleCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if cmd.Actor().Role != kernel.RoleAdmin {
		return nil, errs.NewForbiddenError("change roles", cmd.Actor().Role.String())
	}

	return updateUser(ctx, h.uowFactory, cmd.UserID(), func(u *user.User) error {
		return u.ChangeRole(cmd.Role(), h.clock())
	})
}

func updateUser(ctx context.Context, uowFactory UserUoWFactory, id string, change func(u *user.User) error) (*user.User, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	u, err := userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = change(u); err != nil {
		return nil, err
	}

	if err = userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
