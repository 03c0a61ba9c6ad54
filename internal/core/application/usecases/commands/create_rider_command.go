package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/pkg/guard"
)

var ErrCreateRiderCommandIsNotConstructed = errors.New(
	"CreateRiderCommand must be created via NewCreateRiderCommand constructor",
)

// CreateRiderCommand registers a rider account.
type CreateRiderCommand struct {
	actor    kernel.Actor
	name     string
	phone    kernel.Phone
	password string
	guard    guard.ConstructorGuard
}

func NewCreateRiderCommand(actor kernel.Actor, name, phone, password string) (CreateRiderCommand, error) {
	name = strings.TrimSpace(name)

	p, phoneErr := kernel.NewPhone(phone)

	var nameErr, passwordErr error
	if name == "" {
		nameErr = rider.ErrNameIsRequired
	}
	if password == "" {
		passwordErr = rider.ErrPasswordIsRequired
	}

	if err := errors.Join(actor.Role.Validate(), nameErr, phoneErr, passwordErr); err != nil {
		return CreateRiderCommand{}, err
	}

	return CreateRiderCommand{
		actor:    actor,
		name:     name,
		phone:    p,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRiderCommand) Validate() error {
	return c.guard.Validate(ErrCreateRiderCommandIsNotConstructed)
}

func (c CreateRiderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateRiderCommand) Name() string {
	return c.name
}

func (c CreateRiderCommand) Phone() kernel.Phone {
	return c.phone
}

func (c CreateRiderCommand) Password() string {
	return c.password
}
