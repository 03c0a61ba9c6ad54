package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/counter"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// DefaultOrderNumberPrefix is used when no prefix is configured.
const DefaultOrderNumberPrefix = "DKN"

// SequenceAllocator issues per-day order numbers and user ordinals from
// counters. It runs inside the caller's transaction: the counter row stays
// locked until that transaction ends, so a rolled back caller leaves no gap.
type SequenceAllocator struct {
	prefix string
	clock  kernel.BusinessClock
}

func NewSequenceAllocator(prefix string, clock kernel.BusinessClock) SequenceAllocator {
	if prefix == "" {
		prefix = DefaultOrderNumberPrefix
	}
	return SequenceAllocator{prefix: prefix, clock: clock}
}

// DayKey returns the counter key for the business day containing at.
func (a SequenceAllocator) DayKey(at time.Time) string {
	return a.clock.DayKey(at)
}

// FormatOrderNumber renders value as PREFIX-NNN.
func (a SequenceAllocator) FormatOrderNumber(value int64) string {
	return fmt.Sprintf("%s-%03d", a.prefix, value)
}

// NextOrderNumber allocates the next order number of the business day containing at.
func (a SequenceAllocator) NextOrderNumber(ctx context.Context, counters ports.CounterRepository, at time.Time) (string, error) {
	value, err := a.next(ctx, counters, counter.Orders, a.DayKey(at))
	if err != nil {
		return "", err
	}
	return a.FormatOrderNumber(value), nil
}

// NextUserOrdinal allocates N for a generated "User N" display name.
func (a SequenceAllocator) NextUserOrdinal(ctx context.Context, counters ports.CounterRepository) (int64, error) {
	return a.next(ctx, counters, counter.Users, counter.UsersKey)
}

func (a SequenceAllocator) next(ctx context.Context, counters ports.CounterRepository, name counter.Name, key string) (int64, error) {
	c, err := counters.GetForUpdate(ctx, name, key)
	if errors.Is(err, errs.ErrObjectNotFound) {
		c, err = a.create(ctx, counters, name, key)
	}
	if err != nil {
		return 0, errs.NewSequenceAllocationError(string(name), key, err)
	}

	value := c.Next()
	if err = counters.Update(ctx, c); err != nil {
		return 0, errs.NewSequenceAllocationError(string(name), key, err)
	}

	return value, nil
}

// create inserts the counter unless a concurrent transaction already did, then
// locks whichever row won.
func (a SequenceAllocator) create(ctx context.Context, counters ports.CounterRepository, name counter.Name, key string) (*counter.Counter, error) {
	fresh, err := counter.NewCounter(name, key)
	if err != nil {
		return nil, err
	}

	if err = counters.Add(ctx, fresh); err != nil {
		return nil, err
	}

	return counters.GetForUpdate(ctx, name, key)
}
