package ports

import (
	"context"

	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"
)

// AddressRepository defines the persistence contract for address book entries.
type AddressRepository interface {
	Add(ctx context.Context, aggregate *address.Address) error
	Update(ctx context.Context, aggregate *address.Address) error
	Remove(ctx context.Context, id kernel.UUID) error

	// GetAllByUser returns a user's addresses, oldest first.
	GetAllByUser(ctx context.Context, userID string) ([]*address.Address, error)
}
