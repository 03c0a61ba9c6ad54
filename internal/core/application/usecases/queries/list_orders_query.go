package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows ListOrders. Zero fields do not filter.
type OrderFilter struct {
	UserID   string
	RiderID  *kernel.UUID
	Statuses []order.Status
	Limit    int
}

// ListOrdersQuery lists orders newest first. The filter is narrowed to the
// actor: customers always list their own orders and riders their assignments.
type ListOrdersQuery struct {
	actor  kernel.Actor
	filter OrderFilter
	guard  guard.ConstructorGuard
}

func NewListOrdersQuery(actor kernel.Actor, filter OrderFilter) (ListOrdersQuery, error) {
	if err := actor.Role.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	for _, s := range filter.Statuses {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	if filter.Limit < 0 || filter.Limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 0, MaxListLimit)
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}

	switch actor.Role {
	case kernel.RoleCustomer:
		filter.UserID = actor.ID
	case kernel.RoleRider:
		riderID, err := kernel.UUIDFromString(actor.ID)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		filter.RiderID = &riderID
	}

	return ListOrdersQuery{actor: actor, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}
