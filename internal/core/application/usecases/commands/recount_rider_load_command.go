package commands

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrRecountRiderLoadCommandIsNotConstructed = errors.New(
	"RecountRiderLoadCommand must be created via NewRecountRiderLoadCommand constructor",
)

// RecountRiderLoadCommand rebuilds every rider's active order count from the
// orders they hold.
type RecountRiderLoadCommand struct {
	guard guard.ConstructorGuard
}

func NewRecountRiderLoadCommand() RecountRiderLoadCommand {
	return RecountRiderLoadCommand{guard: guard.NewConstructorGuard()}
}

func (c RecountRiderLoadCommand) Validate() error {
	return c.guard.Validate(ErrRecountRiderLoadCommandIsNotConstructed)
}
