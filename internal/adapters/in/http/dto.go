package http

import (
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/core/domain/model/user"
)

type ExchangeRequest struct {
	Credential  string  `json:"credential"`
	DisplayName *string `json:"displayName,omitempty"`
}

type ExchangeResponse struct {
	SessionToken        string `json:"sessionToken"`
	ResolvedDisplayName string `json:"resolvedDisplayName"`
	UserID              string `json:"userId"`
	IsNewUser           bool   `json:"isNewUser"`
}

type RiderLoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type RiderLoginResponse struct {
	SessionToken string `json:"sessionToken"`
	RiderID      string `json:"riderId"`
	Name         string `json:"name"`
}

type NewRider struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type Rider struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	TotalOrders  int       `json:"totalOrders"`
	ActiveOrders int       `json:"activeOrders"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ProfileUpdate struct {
	DisplayName string `json:"displayName"`
}

type RoleChange struct {
	Role string `json:"role"`
}

type User struct {
	ID               string  `json:"id"`
	Phone            string  `json:"phone"`
	DisplayName      string  `json:"displayName"`
	Role             string  `json:"role"`
	ProfileCompleted bool    `json:"profileCompleted"`
	DefaultAddressID *string `json:"defaultAddressId"`
}

type NewAddress struct {
	Label        string   `json:"label"`
	FullAddress  string   `json:"fullAddress"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	MakeDefault  bool     `json:"makeDefault,omitempty"`
}

type Address struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	FullAddress  string    `json:"fullAddress"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	IsDefault    bool      `json:"isDefault"`
	CreatedAt    time.Time `json:"createdAt"`
}

type NewOrderItem struct {
	ProductID       string `json:"productId"`
	Name            string `json:"name"`
	UnitPrice       int64  `json:"unitPrice"`
	DiscountedPrice *int64 `json:"discountedPrice,omitempty"`
	Quantity        int    `json:"quantity"`
	Unit            string `json:"unit,omitempty"`
}

// NewOrder is the checkout request. UserID defaults to the caller.
type NewOrder struct {
	UserID    string         `json:"userId,omitempty"`
	Items     []NewOrderItem `json:"items"`
	Method    string         `json:"method"`
	AddressID *string        `json:"addressId,omitempty"`
}

type OrderCreated struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

type Transition struct {
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}

type RiderAssignment struct {
	RiderID string `json:"riderId"`
}

type OrderItem struct {
	ProductID       string `json:"productId"`
	Name            string `json:"name"`
	UnitPrice       int64  `json:"unitPrice"`
	DiscountedPrice *int64 `json:"discountedPrice,omitempty"`
	Quantity        int    `json:"quantity"`
	Unit            string `json:"unit,omitempty"`
}

type OrderAddress struct {
	Label        string   `json:"label,omitempty"`
	FullAddress  string   `json:"fullAddress"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

type OrderRider struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Order amounts are in paise.
type Order struct {
	ID           string        `json:"id"`
	Number       string        `json:"number"`
	UserID       string        `json:"userId"`
	Total        int64         `json:"total"`
	Savings      int64         `json:"savings"`
	Method       string        `json:"method"`
	Status       string        `json:"status"`
	Address      *OrderAddress `json:"address,omitempty"`
	Rider        *OrderRider   `json:"rider,omitempty"`
	CancelReason string        `json:"cancelReason,omitempty"`
	Items        []OrderItem   `json:"items"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func riderFromDomain(r *rider.Rider) Rider {
	return Rider{
		ID:           r.ID().String(),
		Name:         r.Name(),
		Phone:        r.Phone().String(),
		TotalOrders:  r.TotalOrders(),
		ActiveOrders: r.ActiveOrders(),
		CreatedAt:    r.CreatedAt(),
	}
}

func riderFromView(v queries.RiderView) Rider {
	return Rider{
		ID:           v.ID.String(),
		Name:         v.Name,
		Phone:        v.Phone,
		TotalOrders:  v.TotalOrders,
		ActiveOrders: v.ActiveOrders,
		CreatedAt:    v.CreatedAt,
	}
}

func userFromDomain(u *user.User) User {
	response := User{
		ID:               u.ID(),
		Phone:            u.Phone().String(),
		DisplayName:      u.DisplayName(),
		Role:             u.Role().String(),
		ProfileCompleted: u.ProfileCompleted(),
	}
	if id := u.DefaultAddressID(); id != nil {
		s := id.String()
		response.DefaultAddressID = &s
	}
	return response
}

func coordinates(c *kernel.Coordinates) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	lat, lng := c.Latitude(), c.Longitude()
	return &lat, &lng
}

func addressFromDomain(a *address.Address) Address {
	lat, lng := coordinates(a.Coordinates())
	return Address{
		ID:           a.ID().String(),
		Label:        string(a.Label()),
		FullAddress:  a.FullAddress(),
		Latitude:     lat,
		Longitude:    lng,
		Instructions: a.Instructions(),
		IsDefault:    a.IsDefault(),
		CreatedAt:    a.CreatedAt(),
	}
}

func addressFromView(v queries.AddressView) Address {
	lat, lng := coordinates(v.Coordinates)
	return Address{
		ID:           v.ID.String(),
		Label:        v.Label,
		FullAddress:  v.FullAddress,
		Latitude:     lat,
		Longitude:    lng,
		Instructions: v.Instructions,
		IsDefault:    v.IsDefault,
		CreatedAt:    v.CreatedAt,
	}
}

func orderAddress(a *order.DeliveryAddress) *OrderAddress {
	if a == nil {
		return nil
	}
	lat, lng := coordinates(a.Coordinates)
	return &OrderAddress{
		Label:        a.Label,
		FullAddress:  a.FullAddress,
		Latitude:     lat,
		Longitude:    lng,
		Instructions: a.Instructions,
	}
}

func orderRider(r *order.RiderSnapshot) *OrderRider {
	if r == nil {
		return nil
	}
	return &OrderRider{ID: r.ID.String(), Name: r.Name, Phone: r.Phone}
}

func paise(m *kernel.Money) *int64 {
	if m == nil {
		return nil
	}
	v := m.Paise()
	return &v
}

func orderFromDomain(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			ProductID:       item.ProductID(),
			Name:            item.Name(),
			UnitPrice:       item.UnitPrice().Paise(),
			DiscountedPrice: paise(item.DiscountedPrice()),
			Quantity:        item.Quantity(),
			Unit:            item.Unit(),
		})
	}

	return Order{
		ID:           o.ID().String(),
		Number:       o.Number(),
		UserID:       o.UserID(),
		Total:        o.Total().Paise(),
		Savings:      o.Savings().Paise(),
		Method:       o.Method().String(),
		Status:       o.Status().String(),
		Address:      orderAddress(o.Address()),
		Rider:        orderRider(o.Rider()),
		CancelReason: o.CancelReason(),
		Items:        items,
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func orderFromView(v queries.OrderView) Order {
	items := make([]OrderItem, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, OrderItem{
			ProductID:       item.ProductID,
			Name:            item.Name,
			UnitPrice:       item.UnitPrice.Paise(),
			DiscountedPrice: paise(item.DiscountedPrice),
			Quantity:        item.Quantity,
			Unit:            item.Unit,
		})
	}

	return Order{
		ID:           v.ID.String(),
		Number:       v.Number,
		UserID:       v.UserID,
		Total:        v.Total.Paise(),
		Savings:      v.Savings.Paise(),
		Method:       v.Method.String(),
		Status:       v.Status.String(),
		Address:      orderAddress(v.Address),
		Rider:        orderRider(v.Rider),
		CancelReason: v.CancelReason,
		Items:        items,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
