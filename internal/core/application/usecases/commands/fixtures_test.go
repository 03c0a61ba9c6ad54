package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var (
	admin      = kernel.Actor{ID: "admin-1", Role: kernel.RoleAdmin}
	shopkeeper = kernel.Actor{ID: "shop-1", Role: kernel.RoleShopkeeper}
	customer   = kernel.Actor{ID: "user-1", Role: kernel.RoleCustomer}
)

func mustPhone(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	p, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return p
}

func newCustomer(t *testing.T, id, phone, name string) *user.User {
	t.Helper()
	u, err := user.NewUser(id, mustPhone(t, phone), name, testNow)
	require.NoError(t, err)
	return u
}

func newRider(t *testing.T, name, phone string) *rider.Rider {
	t.Helper()
	r, err := rider.NewRider(kernel.NewUUID(), name, mustPhone(t, phone), "secret-1", testNow)
	require.NoError(t, err)
	return r
}

func testLines() []commands.OrderLine {
	discounted := int64(6400)
	return []commands.OrderLine{
		{ProductID: "milk-1l", Name: "Milk 1L", UnitPrice: 6800, DiscountedPrice: &discounted, Quantity: 2, Unit: "1 l"},
		{ProductID: "bread", Name: "Bread", UnitPrice: 4500, Quantity: 1, Unit: "400 g"},
	}
}

func newDeliveryOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	item, err := order.NewItem("milk-1l", "Milk 1L", 6800, nil, 1, "1 l")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"DKN-001",
		customer.ID,
		[]order.Item{item},
		order.MethodDelivery,
		&order.DeliveryAddress{Label: "Home", FullAddress: "12 MG Road, Bengaluru"},
		testNow,
	)
	require.NoError(t, err)

	if status != order.Pending {
		require.NoError(t, o.ChangeStatus(shopkeeper, order.Accepted, "", testNow))
	}
	if status == order.Cancelled {
		require.NoError(t, o.ChangeStatus(shopkeeper, order.Cancelled, "out of stock", testNow))
	}
	o.ClearChanges()
	return o
}

// assignedOrder returns an accepted delivery order held by r.
func assignedOrder(t *testing.T, r *rider.Rider) *order.Order {
	t.Helper()

	o := newDeliveryOrder(t, order.Accepted)
	_, err := o.AssignRider(shopkeeper, r.Snapshot(), testNow)
	require.NoError(t, err)
	r.TakeOrder()
	o.ClearChanges()
	return o
}
