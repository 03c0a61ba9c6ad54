package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	riderLoadRecountJob *RiderLoadRecountJob
}

func NewJobManager(recountHandler RecountHandler, recountSchedule string, attempts int, logger *slog.Logger) *JobManager {
	return &JobManager{
		riderLoadRecountJob: NewRiderLoadRecountJob(recountHandler, recountSchedule, attempts, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.riderLoadRecountJob.Start(); err != nil {
		return fmt.Errorf("failed to start rider load recount job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.riderLoadRecountJob.Stop()
}
