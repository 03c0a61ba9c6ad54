package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/jobs"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecountHandler struct {
	mock.Mock
}

func (m *MockRecountHandler) Handle(ctx context.Context, cmd commands.RecountRiderLoadCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestRiderLoadRecountJob_Run(t *testing.T) {
	t.Run("should log corrected riders", func(t *testing.T) {
		handler := &MockRecountHandler{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(2, nil).Once()
		logger, buf := bufferLogger()

		jobs.NewRiderLoadRecountJob(handler, "", 3, logger).Run(t.Context())

		handler.AssertExpectations(t)
		assert.Contains(t, buf.String(), "Rider load counters corrected")
		assert.Contains(t, buf.String(), "riders=2")
	})

	t.Run("should stay quiet when nothing drifted", func(t *testing.T) {
		handler := &MockRecountHandler{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Once()
		logger, buf := bufferLogger()

		jobs.NewRiderLoadRecountJob(handler, "", 3, logger).Run(t.Context())

		assert.NotContains(t, buf.String(), "corrected")
	})

	t.Run("should retry conflicts", func(t *testing.T) {
		handler := &MockRecountHandler{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, errs.NewTransactionConflictError("rider")).Once()
		handler.On("Handle", mock.Anything, mock.Anything).Return(1, nil).Once()
		logger, _ := bufferLogger()

		jobs.NewRiderLoadRecountJob(handler, "", 3, logger).Run(t.Context())

		handler.AssertNumberOfCalls(t, "Handle", 2)
	})

	t.Run("should log other failures once", func(t *testing.T) {
		handler := &MockRecountHandler{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()
		logger, buf := bufferLogger()

		jobs.NewRiderLoadRecountJob(handler, "", 3, logger).Run(t.Context())

		handler.AssertNumberOfCalls(t, "Handle", 1)
		assert.Contains(t, buf.String(), "Rider load recount failed")
	})
}

func TestRiderLoadRecountJob_Start(t *testing.T) {
	logger, _ := bufferLogger()

	err := jobs.NewRiderLoadRecountJob(&MockRecountHandler{}, "not a schedule", 1, logger).Start()
	assert.Error(t, err)

	job := jobs.NewRiderLoadRecountJob(&MockRecountHandler{}, "0 0 3 * * *", 1, logger)
	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager(t *testing.T) {
	logger, _ := bufferLogger()
	manager := jobs.NewJobManager(&MockRecountHandler{}, "", 1, logger)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
