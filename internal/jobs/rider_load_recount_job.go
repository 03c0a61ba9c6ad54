package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/retry"

	"github.com/robfig/cron/v3"
)

// DefaultRecountSchedule runs the recount every five minutes.
const DefaultRecountSchedule = "0 */5 * * * *"

// RecountHandler is satisfied by commands.RecountRiderLoadCommandHandler.
type RecountHandler interface {
	Handle(ctx context.Context, cmd commands.RecountRiderLoadCommand) (int, error)
}

// RiderLoadRecountJob periodically rebuilds riders' active order counts from
// the orders table, repairing drift left by failed or manual writes.
type RiderLoadRecountJob struct {
	handler  RecountHandler
	schedule string
	attempts int
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewRiderLoadRecountJob(handler RecountHandler, schedule string, attempts int, logger *slog.Logger) *RiderLoadRecountJob {
	if schedule == "" {
		schedule = DefaultRecountSchedule
	}
	return &RiderLoadRecountJob{
		handler:  handler,
		schedule: schedule,
		attempts: attempts,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "rider_load_recount_job"),
	}
}

func (j *RiderLoadRecountJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rider load recount job started", "schedule", j.schedule)
	return nil
}

// Run performs one recount. Conflicts with concurrent assignments are retried.
func (j *RiderLoadRecountJob) Run(ctx context.Context) {
	var corrected int
	err := retry.OnConflict(ctx, j.attempts, func(ctx context.Context) error {
		var err error
		corrected, err = j.handler.Handle(ctx, commands.NewRecountRiderLoadCommand())
		return err
	})
	if err != nil {
		j.logger.ErrorContext(ctx, "Rider load recount failed", "error", err)
		return
	}

	if corrected > 0 {
		j.logger.WarnContext(ctx, "Rider load counters corrected", "riders", corrected)
	}
}

// Stop waits for a running recount to finish.
func (j *RiderLoadRecountJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Rider load recount job stopped")
}
