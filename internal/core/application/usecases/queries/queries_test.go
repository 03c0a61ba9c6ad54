package queries_test

import (
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("should pin customers to their own orders", func(t *testing.T) {
		q, err := queries.NewListOrdersQuery(
			kernel.Actor{ID: "user-1", Role: kernel.RoleCustomer},
			queries.OrderFilter{UserID: "user-2"},
		)

		require.NoError(t, err)
		assert.Equal(t, "user-1", q.Filter().UserID)
		assert.Equal(t, queries.DefaultListLimit, q.Filter().Limit)
	})

	t.Run("should pin riders to their assignments", func(t *testing.T) {
		riderID := kernel.NewUUID()
		q, err := queries.NewListOrdersQuery(kernel.Actor{ID: riderID.String(), Role: kernel.RoleRider}, queries.OrderFilter{})

		require.NoError(t, err)
		require.NotNil(t, q.Filter().RiderID)
		assert.Equal(t, riderID, *q.Filter().RiderID)
	})

	t.Run("should keep staff filters", func(t *testing.T) {
		q, err := queries.NewListOrdersQuery(
			kernel.Actor{ID: "shop-1", Role: kernel.RoleShopkeeper},
			queries.OrderFilter{UserID: "user-2", Statuses: []order.Status{order.Pending}, Limit: 10},
		)

		require.NoError(t, err)
		assert.Equal(t, "user-2", q.Filter().UserID)
		assert.Equal(t, 10, q.Filter().Limit)
	})

	t.Run("should reject bad limits and statuses", func(t *testing.T) {
		staff := kernel.Actor{ID: "shop-1", Role: kernel.RoleShopkeeper}

		_, err := queries.NewListOrdersQuery(staff, queries.OrderFilter{Limit: queries.MaxListLimit + 1})
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = queries.NewListOrdersQuery(staff, queries.OrderFilter{Statuses: []order.Status{order.Unknown}})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail on a zero value query", func(t *testing.T) {
		assert.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
	})
}

func TestNewGetOrderQuery(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.Actor{ID: "x", Role: "guest"}, kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewGetOrderQuery(kernel.Actor{ID: "x", Role: kernel.RoleAdmin}, kernel.UUID{})
	assert.Error(t, err)
}

func TestNewListAddressesQuery(t *testing.T) {
	_, err := queries.NewListAddressesQuery(kernel.Actor{ID: "user-1", Role: kernel.RoleCustomer}, " ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
