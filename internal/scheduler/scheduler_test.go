package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawnledger-backend/internal/config"
	"pawnledger-backend/internal/jobs"
)

func schedulerConfig(rateSpec string) *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Timezone: "Asia/Kolkata"},
		Scheduler: config.SchedulerConfig{
			EnsureTodayRate:    rateSpec,
			MarkOverdueLoans:   "0 0 1 * * *",
			SendOverdueNotices: "0 0 10 * * *",
		},
	}
}

func TestNewScheduler_RegistersJobs(t *testing.T) {
	s, err := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, schedulerConfig("0 0 9 * * *")))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Entries())

	s.Start()
	s.Stop()
}

func TestNewScheduler_RejectsBadSpec(t *testing.T) {
	// Five fields are rejected because the parser requires seconds.
	_, err := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, schedulerConfig("0 9 * * *")))
	assert.ErrorContains(t, err, "EnsureTodayRate")
}
