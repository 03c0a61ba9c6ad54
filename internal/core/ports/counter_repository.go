package ports

import (
	"context"

	"storefront/internal/core/domain/model/counter"
)

// CounterRepository defines the persistence contract for sequence counters.
type CounterRepository interface {
	// GetForUpdate reads a counter and locks it until the transaction ends.
	// Returns errs.ObjectNotFoundError when the counter was never created.
	GetForUpdate(ctx context.Context, name counter.Name, key string) (*counter.Counter, error)

	// Add creates a counter unless one with the same name and key exists,
	// waiting for a concurrent creator to finish rather than failing.
	Add(ctx context.Context, aggregate *counter.Counter) error

	Update(ctx context.Context, aggregate *counter.Counter) error
}
