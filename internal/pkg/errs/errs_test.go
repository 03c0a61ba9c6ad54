package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("formats the identifier", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "8c1d")

		assert.Equal(t, "object not found: 8c1d", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
		require.NoError(t, err.Cause)
	})

	t.Run("includes param and cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("rider", "42", cause)

		assert.Equal(t,
			"object not found: param is: rider, ID is: 42 (cause: connection reset)",
			err.Error())
		assert.Equal(t, cause, err.Cause)
	})
}

func TestValueErrors(t *testing.T) {
	cause := errors.New("bad format")

	testCases := []struct {
		name     string
		err      error
		message  string
		sentinel error
	}{
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("credential"),
			message:  "value is required: credential",
			sentinel: errs.ErrValueIsRequired,
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("reason", cause),
			message:  "value is required: reason (cause: bad format)",
			sentinel: errs.ErrValueIsRequired,
		},
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("phone"),
			message:  "value is invalid: phone",
			sentinel: errs.ErrValueIsInvalid,
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("phone", cause),
			message:  "value is invalid: phone (cause: bad format)",
			sentinel: errs.ErrValueIsInvalid,
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("quantity", 0, 1, 99),
			message:  "value is invalid: 0 is quantity, min value is 1, max value is 99",
			sentinel: errs.ErrValueIsOutOfRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.message, tc.err.Error())
			require.ErrorIs(t, tc.err, tc.sentinel)
			require.ErrorIs(t, tc.err, errs.ErrValidation)
		})
	}

	t.Run("out of range flattens newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("label", "Home\nWork", 0, 10)
		assert.Contains(t, err.Error(), "Home Work")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("order version", errors.New("stale"))

	assert.Equal(t, "version is invalid: order version (cause: stale)", err.Error())
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	assert.NotErrorIs(t, err, errs.ErrValidation)
}

func TestWorkflowErrors(t *testing.T) {
	t.Run("invalid transition names both states and the actor", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("out_for_delivery", "cancelled", "customer", "")

		assert.Equal(t,
			"invalid transition: out_for_delivery -> cancelled is not allowed for customer",
			err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.False(t, errs.IsTransient(err))
	})

	t.Run("not assigned", func(t *testing.T) {
		err := errs.NewNotAssignedError("o-1", "r-2")

		assert.Equal(t, "rider is not assigned: rider r-2 is not assigned to order o-1", err.Error())
		require.ErrorIs(t, err, errs.ErrNotAssigned)
	})

	t.Run("forbidden", func(t *testing.T) {
		err := errs.NewForbiddenError("assign a rider", "customer")

		assert.Equal(t, "operation is forbidden: customer may not assign a rider", err.Error())
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("conflict is transient", func(t *testing.T) {
		err := errs.NewTransactionConflictError("order")

		require.ErrorIs(t, err, errs.ErrTransactionConflict)
		assert.True(t, errs.IsTransient(err))
		assert.True(t, errs.IsTransient(fmt.Errorf("wrapped: %w", err)))
	})

	t.Run("sequence allocation keeps the conflict cause visible", func(t *testing.T) {
		conflict := errs.NewTransactionConflictError("counter")
		err := errs.NewSequenceAllocationError("orders", "20250601", conflict)

		require.ErrorIs(t, err, errs.ErrSequenceAllocation)
		require.ErrorIs(t, err, errs.ErrTransactionConflict)
		assert.True(t, errs.IsTransient(err))
		assert.Contains(t, err.Error(), "orders/20250601")
	})

	t.Run("sequence allocation without conflict is permanent", func(t *testing.T) {
		err := errs.NewSequenceAllocationError("orders", "20250601", errors.New("disk full"))

		assert.False(t, errs.IsTransient(err))
	})

	t.Run("reconciliation unwraps to its cause", func(t *testing.T) {
		cause := errors.New("timeout")
		err := errs.NewReconciliationError(cause)

		require.ErrorIs(t, err, errs.ErrReconciliation)
		require.ErrorIs(t, err, cause)
		assert.Equal(t, "identity reconciliation failed (cause: timeout)", err.Error())
	})
}
