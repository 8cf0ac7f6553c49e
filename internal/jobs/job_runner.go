package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pawnledger-backend/internal/config"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/service"
)

// Job names accepted by RunByName and the cronjob -run-once flag.
const (
	JobEnsureTodayRate    = "ensure-today-rate"
	JobMarkOverdueLoans   = "mark-overdue-loans"
	JobSendOverdueNotices = "send-overdue-notices"
	JobAllDaily           = "all-daily"
)

const jobTimeout = 5 * time.Minute

var ErrUnknownJob = errors.New("unknown job")

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Rates     service.RateService
	Lifecycle service.LifecycleService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery and a bounded context.
// A failed job is logged and picked up again on the next tick.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	logger.Info("Starting job", "job", jobName)
	if err = jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return err
	}
	logger.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// EnsureTodayRate inserts the day's gold rate unless one already exists.
func (jr *JobRunner) EnsureTodayRate() error {
	return jr.runWithRecovery("EnsureTodayRate", func(ctx context.Context) error {
		rate, created, err := jr.services.Rates.EnsureTodayRate(ctx)
		if err != nil {
			return err
		}
		if created {
			logger.WithJob("EnsureTodayRate").Info("Gold rate generated",
				"rate_22k", rate.RatePerGram22k.String(),
				"rate_24k", rate.RatePerGram24k.String(),
			)
		}
		return nil
	})
}

// MarkOverdueLoans moves active loans past their due date to overdue.
func (jr *JobRunner) MarkOverdueLoans() error {
	return jr.runWithRecovery("MarkOverdueLoans", func(ctx context.Context) error {
		ids, err := jr.services.Lifecycle.MarkOverdueLoans(ctx)
		if err != nil {
			return err
		}
		logger.WithJob("MarkOverdueLoans").Info("Marked loans as overdue", "count", len(ids))
		return nil
	})
}

// SendOverdueNotices emails customers whose loans went overdue and were not yet told.
func (jr *JobRunner) SendOverdueNotices() error {
	return jr.runWithRecovery("SendOverdueNotices", func(ctx context.Context) error {
		sent, err := jr.services.Lifecycle.SendOverdueNotices(ctx)
		logger.WithJob("SendOverdueNotices").Info("Overdue notices processed", "sent", sent)
		return err
	})
}

// RunAllDailyJobs runs every job in dependency order (for manual execution).
func (jr *JobRunner) RunAllDailyJobs() error {
	return errors.Join(
		jr.EnsureTodayRate(),
		jr.MarkOverdueLoans(),
		jr.SendOverdueNotices(),
	)
}

// RunByName runs a single job once.
func (jr *JobRunner) RunByName(name string) error {
	switch name {
	case JobEnsureTodayRate:
		return jr.EnsureTodayRate()
	case JobMarkOverdueLoans:
		return jr.MarkOverdueLoans()
	case JobSendOverdueNotices:
		return jr.SendOverdueNotices()
	case JobAllDaily:
		return jr.RunAllDailyJobs()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownJob, name)
	}
}
