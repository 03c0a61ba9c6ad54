// Package retry runs a unit of work again when it lost an optimistic-concurrency race.
package retry

import (
	"context"
	"time"

	"storefront/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultInitialInterval = 20 * time.Millisecond
	defaultMaxInterval     = 250 * time.Millisecond
)

// OnConflict calls op until it succeeds, fails with a non-transient error, or
// attempts calls have been made. Only errors matching errs.ErrTransactionConflict
// are retried; everything else is returned on first occurrence. attempts <= 1
// disables retrying.
func OnConflict(ctx context.Context, attempts int, op func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = defaultInitialInterval
	policy.MaxInterval = defaultMaxInterval

	bounded := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx)

	return backoff.Retry(func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !errs.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, bounded)
}
