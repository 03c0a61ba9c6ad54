// Package ports defines the contracts between the core and its adapters:
// repositories, the unit of work, the identity verifier and the event publisher.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order back with a compare-and-set on its version and
	// appends its pending status changes to the history. A concurrent writer
	// that got there first surfaces as errs.TransactionConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountActiveByRider counts the non-terminal orders held by each rider.
	CountActiveByRider(ctx context.Context) (map[kernel.UUID]int, error)
}
