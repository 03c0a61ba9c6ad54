// Package addressrepo persists address book entries.
package addressrepo

import (
	"time"

	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AddressDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       string    `gorm:"index"`
	Label        string
	FullAddress  string
	Latitude     *float64
	Longitude    *float64
	Instructions string
	IsDefault    bool
	CreatedAt    time.Time
}

func (AddressDTO) TableName() string {
	return "addresses"
}

func fromDomain(a *address.Address) AddressDTO {
	dto := AddressDTO{
		ID:           a.ID().Bytes(),
		UserID:       a.UserID(),
		Label:        string(a.Label()),
		FullAddress:  a.FullAddress(),
		Instructions: a.Instructions(),
		IsDefault:    a.IsDefault(),
		CreatedAt:    a.CreatedAt(),
	}

	if c := a.Coordinates(); c != nil {
		lat, lng := c.Latitude(), c.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lng
	}

	return dto
}

func toDomain(dto AddressDTO) (*address.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	label, err := address.ParseLabel(dto.Label)
	if err != nil {
		return nil, err
	}

	var coordinates *kernel.Coordinates
	if dto.Latitude != nil && dto.Longitude != nil {
		c, coordErr := kernel.NewCoordinates(*dto.Latitude, *dto.Longitude)
		if coordErr != nil {
			return nil, coordErr
		}
		coordinates = &c
	}

	return address.RestoreAddress(id, dto.UserID, label, dto.FullAddress, coordinates, dto.Instructions, dto.IsDefault, dto.CreatedAt)
}
