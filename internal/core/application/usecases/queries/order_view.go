// Package queries contains read-only operations. Handlers read straight from
// the database and return flat views; they never load aggregates.
package queries

import (
	"context"
	"database/sql"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItemView is one line item as it was copied onto the order.
type OrderItemView struct {
	ProductID       string
	Name            string
	UnitPrice       kernel.Money
	DiscountedPrice *kernel.Money
	Quantity        int
	Unit            string
}

// OrderView is the read model of an order.
type OrderView struct {
	ID           kernel.UUID
	Number       string
	UserID       string
	Total        kernel.Money
	Savings      kernel.Money
	Method       order.DeliveryMethod
	Status       order.Status
	Address      *order.DeliveryAddress
	Rider        *order.RiderSnapshot
	CancelReason string
	Items        []OrderItemView
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var orderColumns = []string{
	"id", "number", "user_id", "total", "savings", "method", "status",
	"address_label", "address_full", "address_latitude", "address_longitude", "address_instructions",
	"rider_id", "rider_name", "rider_phone", "cancel_reason", "created_at", "updated_at",
}

// selectOrders runs an orders query built with squirrel and attaches items.
func selectOrders(ctx context.Context, db *gorm.DB, builder sq.SelectBuilder) ([]OrderView, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = attachItems(ctx, db, views); err != nil {
		return nil, err
	}
	return views, nil
}

func scanOrder(rows *sql.Rows) (OrderView, error) {
	var (
		view                      OrderView
		id                        uuid.UUID
		total, savings            int64
		method, status            string
		label, full, instructions sql.NullString
		latitude, longitude       sql.NullFloat64
		riderID                   uuid.NullUUID
		riderName, riderPhone     sql.NullString
	)

	err := rows.Scan(
		&id, &view.Number, &view.UserID, &total, &savings, &method, &status,
		&label, &full, &latitude, &longitude, &instructions,
		&riderID, &riderName, &riderPhone, &view.CancelReason, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return OrderView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if view.Method, err = order.ParseDeliveryMethod(method); err != nil {
		return OrderView{}, err
	}
	if view.Status, err = order.ParseStatus(status); err != nil {
		return OrderView{}, err
	}
	view.Total, view.Savings = kernel.Money(total), kernel.Money(savings)

	if full.Valid {
		view.Address = &order.DeliveryAddress{
			Label:        label.String,
			FullAddress:  full.String,
			Instructions: instructions.String,
		}
		if latitude.Valid && longitude.Valid {
			coords, coordErr := kernel.NewCoordinates(latitude.Float64, longitude.Float64)
			if coordErr != nil {
				return OrderView{}, coordErr
			}
			view.Address.Coordinates = &coords
		}
	}

	if riderID.Valid {
		rid, idErr := kernel.UUIDFromBytes(riderID.UUID[:])
		if idErr != nil {
			return OrderView{}, idErr
		}
		view.Rider = &order.RiderSnapshot{ID: rid, Name: riderName.String, Phone: riderPhone.String}
	}

	return view, nil
}

func attachItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	// ids go in as strings: squirrel would expand a uuid.UUID array into a list
	ids := make([]string, 0, len(views))
	index := make(map[string]int, len(views))
	for i, view := range views {
		id := view.ID.String()
		ids = append(ids, id)
		index[id] = i
	}

	query, args, err := sq.
		Select("order_id", "product_id", "name", "unit_price", "discounted_price", "quantity", "unit").
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "position").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID    uuid.UUID
			item       OrderItemView
			unitPrice  int64
			discounted sql.NullInt64
		)
		if err = rows.Scan(&orderID, &item.ProductID, &item.Name, &unitPrice, &discounted, &item.Quantity, &item.Unit); err != nil {
			return err
		}

		item.UnitPrice = kernel.Money(unitPrice)
		if discounted.Valid {
			d := kernel.Money(discounted.Int64)
			item.DiscountedPrice = &d
		}

		if i, ok := index[orderID.String()]; ok {
			views[i].Items = append(views[i].Items, item)
		}
	}

	return rows.Err()
}
