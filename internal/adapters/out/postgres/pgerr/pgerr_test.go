package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"storefront/internal/adapters/out/postgres/pgerr"
	"storefront/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		code      string
		transient bool
	}{
		{"40001", true},
		{"40P01", true},
		{"55P03", true},
		{"23505", true},
		{"23503", false},
		{"42P01", false},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			err := pgerr.Classify(fmt.Errorf("exec: %w", &pgconn.PgError{Code: tc.code}), "order")

			assert.Equal(t, tc.transient, errs.IsTransient(err))
		})
	}

	t.Run("should pass other errors through", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Same(t, plain, pgerr.Classify(plain, "order"))
		assert.NoError(t, pgerr.Classify(nil, "order"))
	})
}
