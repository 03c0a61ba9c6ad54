// Package riderrepo persists rider aggregates.
package riderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

type RiderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Phone        string `gorm:"uniqueIndex"`
	PasswordHash string
	TotalOrders  int
	ActiveOrders int
	CreatedAt    time.Time
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:           r.ID().Bytes(),
		Name:         r.Name(),
		Phone:        r.Phone().String(),
		PasswordHash: r.PasswordHash(),
		TotalOrders:  r.TotalOrders(),
		ActiveOrders: r.ActiveOrders(),
		CreatedAt:    r.CreatedAt(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(id, dto.Name, phone, dto.PasswordHash, dto.TotalOrders, dto.ActiveOrders, dto.CreatedAt)
}
