package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/guard"
)

var (
	ErrUpdateProfileCommandIsNotConstructed = errors.New(
		"UpdateProfileCommand must be created via NewUpdateProfileCommand constructor",
	)
	ErrChangeUserRoleCommandIsNotConstructed = errors.New(
		"ChangeUserRoleCommand must be created via NewChangeUserRoleCommand constructor",
	)
)

type UpdateProfileCommand struct {
	actor       kernel.Actor
	displayName string
	guard       guard.ConstructorGuard
}

func NewUpdateProfileCommand(actor kernel.Actor, displayName string) (UpdateProfileCommand, error) {
	displayName = strings.TrimSpace(displayName)

	var nameErr error
	if displayName == "" {
		nameErr = user.ErrDisplayNameRequired
	}

	if err := errors.Join(actor.Role.Validate(), nameErr); err != nil {
		return UpdateProfileCommand{}, err
	}

	return UpdateProfileCommand{actor: actor, displayName: displayName, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProfileCommandIsNotConstructed)
}

func (c UpdateProfileCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateProfileCommand) DisplayName() string {
	return c.displayName
}

// ChangeUserRoleCommand promotes or demotes a user. Admin only.
type ChangeUserRoleCommand struct {
	actor  kernel.Actor
	userID string
	role   kernel.Role
	guard  guard.ConstructorGuard
}

func NewChangeUserRoleCommand(actor kernel.Actor, userID string, role string) (ChangeUserRoleCommand, error) {
	r, roleErr := kernel.ParseRole(role)

	var idErr error
	if strings.TrimSpace(userID) == "" {
		idErr = user.ErrIDIsRequired
	}

	if err := errors.Join(actor.Role.Validate(), idErr, roleErr); err != nil {
		return ChangeUserRoleCommand{}, err
	}

	return ChangeUserRoleCommand{actor: actor, userID: userID, role: r, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrChangeUserRoleCommandIsNotConstructed)
}

func (c ChangeUserRoleCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ChangeUserRoleCommand) UserID() string {
	return c.userID
}

func (c ChangeUserRoleCommand) Role() kernel.Role {
	return c.role
}
