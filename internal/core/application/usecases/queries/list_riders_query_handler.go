package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRidersQueryHandler struct {
	db *gorm.DB
}

func NewListRidersQueryHandler(db *gorm.DB) ListRidersQueryHandler {
	return ListRidersQueryHandler{db: db}
}

// Handle lists riders by name, least loaded first among namesakes.
func (h ListRidersQueryHandler) Handle(ctx context.Context, query ListRidersQuery) ([]RiderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if actor := query.Actor(); !actor.Role.IsStaff() {
		return nil, errs.NewForbiddenError("list riders", actor.Role.String())
	}

	riders := make([]RiderView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			total_orders,
			active_orders,
			created_at
		FROM riders
		ORDER BY name, active_orders, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view RiderView
		var id uuid.UUID

		if err = rows.Scan(&id, &view.Name, &view.Phone, &view.TotalOrders, &view.ActiveOrders, &view.CreatedAt); err != nil {
			return nil, err
		}

		riderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = riderID
		riders = append(riders, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return riders, nil
}
