package counterrepo

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/adapters/out/postgres/pgerr"
	"storefront/internal/core/domain/model/counter"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCounterRepository implements ports.CounterRepository. It only makes
// sense inside a transaction: the row lock taken by GetForUpdate is held until
// the transaction ends.
type GormCounterRepository struct {
	db *gorm.DB
}

func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// GetForUpdate reads the counter with SELECT ... FOR UPDATE.
func (r *GormCounterRepository) GetForUpdate(ctx context.Context, name counter.Name, key string) (*counter.Counter, error) {
	var dto CounterDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ? AND key = ?", string(name), key).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("counter", fmt.Sprintf("%s/%s", name, key))
		}
		return nil, pgerr.Classify(err, "counter")
	}

	return toDomain(dto)
}

// Add inserts the counter with ON CONFLICT DO NOTHING. When another
// transaction inserted the same key first, Postgres makes this insert wait for
// it and then skips the row.
func (r *GormCounterRepository) Add(ctx context.Context, aggregate *counter.Counter) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
	return pgerr.Classify(err, "counter")
}

func (r *GormCounterRepository) Update(ctx context.Context, aggregate *counter.Counter) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CounterDTO{}).
		Where("name = ? AND key = ?", string(aggregate.Name()), aggregate.Key()).
		Update("value", aggregate.Value())
	if result.Error != nil {
		return pgerr.Classify(result.Error, "counter")
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("counter", fmt.Sprintf("%s/%s", aggregate.Name(), aggregate.Key()))
	}
	return nil
}
