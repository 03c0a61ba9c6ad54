package queries

import (
	"context"
	"database/sql"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListAddressesQueryHandler struct {
	db *gorm.DB
}

func NewListAddressesQueryHandler(db *gorm.DB) ListAddressesQueryHandler {
	return ListAddressesQueryHandler{db: db}
}

// Handle lists the address book oldest first. Only the owner or an admin may
// read it.
func (h ListAddressesQueryHandler) Handle(ctx context.Context, query ListAddressesQuery) ([]AddressView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if actor.ID != query.UserID() && actor.Role != kernel.RoleAdmin {
		return nil, errs.NewForbiddenError("read other users' addresses", actor.Role.String())
	}

	addresses := make([]AddressView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			label,
			full_address,
			latitude,
			longitude,
			instructions,
			is_default,
			created_at
		FROM addresses
		WHERE user_id = ?
		ORDER BY created_at, id
	`, query.UserID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view AddressView
		var id uuid.UUID
		var latitude, longitude sql.NullFloat64

		err = rows.Scan(&id, &view.Label, &view.FullAddress, &latitude, &longitude, &view.Instructions, &view.IsDefault, &view.CreatedAt)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		if latitude.Valid && longitude.Valid {
			coords, coordErr := kernel.NewCoordinates(latitude.Float64, longitude.Float64)
			if coordErr != nil {
				return nil, coordErr
			}
			view.Coordinates = &coords
		}
		addresses = append(addresses, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return addresses, nil
}
