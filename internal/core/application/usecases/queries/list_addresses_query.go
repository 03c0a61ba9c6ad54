package queries

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/guard"
)

var ErrListAddressesQueryIsNotConstructed = errors.New(
	"ListAddressesQuery must be created via NewListAddressesQuery constructor",
)

// ListAddressesQuery reads a user's address book.
type ListAddressesQuery struct {
	actor  kernel.Actor
	userID string
	guard  guard.ConstructorGuard
}

func NewListAddressesQuery(actor kernel.Actor, userID string) (ListAddressesQuery, error) {
	if err := actor.Role.Validate(); err != nil {
		return ListAddressesQuery{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return ListAddressesQuery{}, user.ErrIDIsRequired
	}

	return ListAddressesQuery{actor: actor, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAddressesQuery) Validate() error {
	return q.guard.Validate(ErrListAddressesQueryIsNotConstructed)
}

func (q ListAddressesQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListAddressesQuery) UserID() string {
	return q.userID
}

type AddressView struct {
	ID           kernel.UUID
	Label        string
	FullAddress  string
	Coordinates  *kernel.Coordinates
	Instructions string
	IsDefault    bool
	CreatedAt    time.Time
}
