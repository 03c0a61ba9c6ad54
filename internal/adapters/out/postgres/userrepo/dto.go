// Package userrepo persists user aggregates.
package userrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID               string `gorm:"primaryKey"`
	Phone            string `gorm:"index"`
	DisplayName      string
	Role             string
	ProfileCompleted bool
	DefaultAddressID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	var defaultAddressID *uuid.UUID
	if id := u.DefaultAddressID(); id != nil {
		raw := id.Bytes()
		defaultAddressID = &raw
	}

	return UserDTO{
		ID:               u.ID(),
		Phone:            u.Phone().String(),
		DisplayName:      u.DisplayName(),
		Role:             u.Role().String(),
		ProfileCompleted: u.ProfileCompleted(),
		DefaultAddressID: defaultAddressID,
		CreatedAt:        u.CreatedAt(),
		UpdatedAt:        u.UpdatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	role, err := kernel.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	var defaultAddressID *kernel.UUID
	if dto.DefaultAddressID != nil {
		id, idErr := kernel.UUIDFromBytes(dto.DefaultAddressID[:])
		if idErr != nil {
			return nil, idErr
		}
		defaultAddressID = &id
	}

	return user.RestoreUser(
		dto.ID,
		phone,
		dto.DisplayName,
		role,
		dto.ProfileCompleted,
		defaultAddressID,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
