package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/pkg/guard"
)

var ErrRiderLoginCommandIsNotConstructed = errors.New(
	"RiderLoginCommand must be created via NewRiderLoginCommand constructor",
)

// RiderLoginCommand exchanges rider phone and password for a session.
type RiderLoginCommand struct {
	phone    kernel.Phone
	password string
	guard    guard.ConstructorGuard
}

func NewRiderLoginCommand(phone, password string) (RiderLoginCommand, error) {
	p, err := kernel.NewPhone(phone)
	if err != nil {
		return RiderLoginCommand{}, err
	}
	if password == "" {
		return RiderLoginCommand{}, rider.ErrPasswordIsRequired
	}
	return RiderLoginCommand{phone: p, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (c RiderLoginCommand) Validate() error {
	return c.guard.Validate(ErrRiderLoginCommandIsNotConstructed)
}

func (c RiderLoginCommand) Phone() kernel.Phone {
	return c.phone
}

func (c RiderLoginCommand) Password() string {
	return c.password
}
