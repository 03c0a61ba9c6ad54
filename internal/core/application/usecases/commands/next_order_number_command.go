package commands

import (
	"errors"
	"time"

	"storefront/internal/pkg/guard"
)

var ErrNextOrderNumberCommandIsNotConstructed = errors.New(
	"NextOrderNumberCommand must be created via NewNextOrderNumberCommand constructor",
)

// NextOrderNumberCommand allocates an order number outside of order creation.
type NextOrderNumberCommand struct {
	at    time.Time
	guard guard.ConstructorGuard
}

func NewNextOrderNumberCommand(at time.Time) NextOrderNumberCommand {
	return NextOrderNumberCommand{
		at:    at,
		guard: guard.NewConstructorGuard(),
	}
}

func (c NextOrderNumberCommand) Validate() error {
	return c.guard.Validate(ErrNextOrderNumberCommandIsNotConstructed)
}

func (c NextOrderNumberCommand) At() time.Time {
	return c.at
}
