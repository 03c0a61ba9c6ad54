// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// RiderLoadRecountJob recomputes every rider's active order count from the
// orders they hold. The counters are denormalised onto riders at assignment
// time; the job makes them self-healing. Its schedule is a six-field cron
// expression (seconds first), every five minutes by default.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(recountHandler, cfg.RiderRecountSchedule, cfg.ConflictRetryAttempts, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Conflicts with concurrent assignments are retried; other failures are
// logged and the next tick tries again.
package jobs
