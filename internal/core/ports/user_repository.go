package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
// Uniqueness of the phone number is not enforced by storage; callers that
// create users must hold the users counter lock and check FindByPhone first.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error
	Get(ctx context.Context, id string) (*user.User, error)

	// FindByPhone returns the oldest user with the phone, or
	// errs.ObjectNotFoundError.
	FindByPhone(ctx context.Context, phone kernel.Phone) (*user.User, error)
}
