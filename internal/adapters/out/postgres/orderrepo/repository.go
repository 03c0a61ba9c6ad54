package orderrepo

import (
	"context"
	"errors"

	"storefront/internal/adapters/out/postgres/pgerr"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker lets the unit of work collect the orders written in it.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and any status changes it already has.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err, "order")
	}

	if err := r.appendChanges(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns only when the stored version still matches
// the one the aggregate was loaded with.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":        dto.Status,
			"rider_id":      dto.RiderID,
			"rider_name":    dto.RiderName,
			"rider_phone":   dto.RiderPhone,
			"cancel_reason": dto.CancelReason,
			"updated_at":    dto.UpdatedAt,
			"version":       dto.Version + 1,
		})
	if result.Error != nil {
		return pgerr.Classify(result.Error, "order")
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate.ID())
	}
	aggregate.AdvanceVersion()

	if err := r.appendChanges(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its items in their original order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Take(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountActiveByRider counts the non-terminal orders each rider holds.
func (r *GormOrderRepository) CountActiveByRider(ctx context.Context) (map[kernel.UUID]int, error) {
	type riderLoad struct {
		RiderID uuid.UUID
		Active  int
	}

	var loads []riderLoad
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("rider_id, COUNT(*) AS active").
		Where("rider_id IS NOT NULL").
		Where("status NOT IN ?", []string{
			order.Delivered.String(), order.Completed.String(), order.Cancelled.String(),
		}).
		Group("rider_id").
		Scan(&loads).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[kernel.UUID]int, len(loads))
	for _, load := range loads {
		id, idErr := kernel.UUIDFromBytes(load.RiderID[:])
		if idErr != nil {
			return nil, idErr
		}
		counts[id] = load.Active
	}

	return counts, nil
}

func (r *GormOrderRepository) appendChanges(ctx context.Context, aggregate *order.Order) error {
	changes := changesFromDomain(aggregate)
	if len(changes) == 0 {
		return nil
	}

	// changes are cleared by the unit of work after commit, so each
	// handler must write an order at most once
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&changes).Error
}

func (r *GormOrderRepository) missOrConflict(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewTransactionConflictError("order")
}
