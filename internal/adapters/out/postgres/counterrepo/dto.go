// Package counterrepo persists sequence counters.
package counterrepo

import (
	"storefront/internal/core/domain/model/counter"
)

type CounterDTO struct {
	Name  string `gorm:"primaryKey"`
	Key   string `gorm:"primaryKey"`
	Value int64
}

func (CounterDTO) TableName() string {
	return "counters"
}

func fromDomain(c *counter.Counter) CounterDTO {
	return CounterDTO{
		Name:  string(c.Name()),
		Key:   c.Key(),
		Value: c.Value(),
	}
}

func toDomain(dto CounterDTO) (*counter.Counter, error) {
	return counter.RestoreCounter(counter.Name(dto.Name), dto.Key, dto.Value)
}
