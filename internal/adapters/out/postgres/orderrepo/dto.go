// Package orderrepo maps order aggregates onto the orders, order_items and
// order_status_changes tables.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is one row of the orders table. The address and rider snapshots
// are flattened into nullable columns.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number              string
	UserID              string
	Total               int64
	Savings             int64
	Method              string
	AddressLabel        *string
	AddressFull         *string
	AddressLatitude     *float64
	AddressLongitude    *float64
	AddressInstructions *string
	Status              string
	RiderID             *uuid.UUID `gorm:"type:uuid"`
	RiderName           *string
	RiderPhone          *string
	CancelReason        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int

	Items []OrderItemDTO `gorm:"foreignKey:OrderID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	OrderID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position        int       `gorm:"primaryKey;autoIncrement:false"`
	ProductID       string
	Name            string
	UnitPrice       int64
	DiscountedPrice *int64
	Quantity        int
	Unit            string
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusChangeDTO is an append-only history row.
type StatusChangeDTO struct {
	ID         int64     `gorm:"primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid"`
	FromStatus string
	ToStatus   string
	ActorID    string
	ActorRole  string
	Reason     string
	ChangedAt  time.Time
}

func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:           o.ID().Bytes(),
		Number:       o.Number(),
		UserID:       o.UserID(),
		Total:        o.Total().Paise(),
		Savings:      o.Savings().Paise(),
		Method:       o.Method().String(),
		Status:       o.Status().String(),
		CancelReason: o.CancelReason(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Version:      o.Version(),
	}

	if a := o.Address(); a != nil {
		dto.AddressLabel = &a.Label
		dto.AddressFull = &a.FullAddress
		dto.AddressInstructions = &a.Instructions
		if a.Coordinates != nil {
			lat, lng := a.Coordinates.Latitude(), a.Coordinates.Longitude()
			dto.AddressLatitude, dto.AddressLongitude = &lat, &lng
		}
	}

	if r := o.Rider(); r != nil {
		id := r.ID.Bytes()
		dto.RiderID = &id
		dto.RiderName = &r.Name
		dto.RiderPhone = &r.Phone
	}

	items := o.Items()
	dto.Items = make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		itemDTO := OrderItemDTO{
			OrderID:   dto.ID,
			Position:  i + 1,
			ProductID: item.ProductID(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Paise(),
			Quantity:  item.Quantity(),
			Unit:      item.Unit(),
		}
		if p := item.DiscountedPrice(); p != nil {
			v := p.Paise()
			itemDTO.DiscountedPrice = &v
		}
		dto.Items = append(dto.Items, itemDTO)
	}

	return dto
}

func changesFromDomain(o *order.Order) []StatusChangeDTO {
	changes := o.Changes()
	dtos := make([]StatusChangeDTO, 0, len(changes))
	for _, c := range changes {
		dtos = append(dtos, StatusChangeDTO{
			OrderID:    o.ID().Bytes(),
			FromStatus: c.From.String(),
			ToStatus:   c.To.String(),
			ActorID:    c.ActorID,
			ActorRole:  c.ActorRole.String(),
			Reason:     c.Reason,
			ChangedAt:  c.At,
		})
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	method, err := order.ParseDeliveryMethod(dto.Method)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	address, err := addressToDomain(dto)
	if err != nil {
		return nil, err
	}

	rider, err := riderToDomain(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreData{
		ID:           id,
		Number:       dto.Number,
		UserID:       dto.UserID,
		Items:        items,
		Total:        kernel.Money(dto.Total),
		Savings:      kernel.Money(dto.Savings),
		Method:       method,
		Address:      address,
		Status:       status,
		Rider:        rider,
		CancelReason: dto.CancelReason,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
		Version:      dto.Version,
	})
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}

	var discounted *kernel.Money
	if dto.DiscountedPrice != nil {
		d, moneyErr := kernel.NewMoney(*dto.DiscountedPrice)
		if moneyErr != nil {
			return order.Item{}, moneyErr
		}
		discounted = &d
	}

	return order.NewItem(dto.ProductID, dto.Name, unitPrice, discounted, dto.Quantity, dto.Unit)
}

func addressToDomain(dto OrderDTO) (*order.DeliveryAddress, error) {
	if dto.AddressFull == nil {
		return nil, nil
	}

	a := &order.DeliveryAddress{FullAddress: *dto.AddressFull}
	if dto.AddressLabel != nil {
		a.Label = *dto.AddressLabel
	}
	if dto.AddressInstructions != nil {
		a.Instructions = *dto.AddressInstructions
	}
	if dto.AddressLatitude != nil && dto.AddressLongitude != nil {
		c, err := kernel.NewCoordinates(*dto.AddressLatitude, *dto.AddressLongitude)
		if err != nil {
			return nil, err
		}
		a.Coordinates = &c
	}

	return a, nil
}

func riderToDomain(dto OrderDTO) (*order.RiderSnapshot, error) {
	if dto.RiderID == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	r := &order.RiderSnapshot{ID: id}
	if dto.RiderName != nil {
		r.Name = *dto.RiderName
	}
	if dto.RiderPhone != nil {
		r.Phone = *dto.RiderPhone
	}
	return r, nil
}
