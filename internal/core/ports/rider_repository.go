package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	Add(ctx context.Context, aggregate *rider.Rider) error
	Update(ctx context.Context, aggregate *rider.Rider) error
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetForUpdate reads the rider and holds its row lock until the unit of
	// work ends. Handlers that move a rider's order counts read through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetByPhone returns errs.ObjectNotFoundError when no rider has the phone.
	GetByPhone(ctx context.Context, phone kernel.Phone) (*rider.Rider, error)

	GetAll(ctx context.Context) ([]*rider.Rider, error)

	// GetAllForUpdate locks every rider row, in id order.
	GetAllForUpdate(ctx context.Context) ([]*rider.Rider, error)
}
