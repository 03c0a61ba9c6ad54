package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrListRidersQueryIsNotConstructed = errors.New(
	"ListRidersQuery must be created via NewListRidersQuery constructor",
)

// ListRidersQuery lists every rider for shop staff choosing whom to assign.
type ListRidersQuery struct {
	actor kernel.Actor
	guard guard.ConstructorGuard
}

func NewListRidersQuery(actor kernel.Actor) (ListRidersQuery, error) {
	if err := actor.Role.Validate(); err != nil {
		return ListRidersQuery{}, err
	}
	return ListRidersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListRidersQuery) Validate() error {
	return q.guard.Validate(ErrListRidersQueryIsNotConstructed)
}

func (q ListRidersQuery) Actor() kernel.Actor {
	return q.actor
}

// RiderView carries no credentials.
type RiderView struct {
	ID           kernel.UUID
	Name         string
	Phone        string
	TotalOrders  int
	ActiveOrders int
	CreatedAt    time.Time
}
