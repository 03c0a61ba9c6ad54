package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError both for missing orders and for
// orders the actor may not see.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	views, err := selectOrders(ctx, h.db, sq.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": query.OrderID().String()}))
	if err != nil {
		return OrderView{}, err
	}

	if len(views) == 0 || !visibleTo(query.Actor(), views[0]) {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	return views[0], nil
}

func visibleTo(actor kernel.Actor, view OrderView) bool {
	switch actor.Role {
	case kernel.RoleShopkeeper, kernel.RoleAdmin:
		return true
	case kernel.RoleCustomer:
		return view.UserID == actor.ID
	case kernel.RoleRider:
		return view.Rider != nil && view.Rider.ID.String() == actor.ID
	default:
		return false
	}
}
