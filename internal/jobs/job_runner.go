package jobs

import (
	"tokenlease-backend/internal/config"
	"tokenlease-backend/internal/logger"
	"tokenlease-backend/internal/repository"
)

// JobRunner coordinates the scheduled operational jobs. Jobs are
// read-only: reclaiming an expired rental stays a caller decision.
type JobRunner struct {
	leaseRepo repository.LeaseRepository
	config    *config.Config
}

func NewJobRunner(leaseRepo repository.LeaseRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		leaseRepo: leaseRepo,
		config:    cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
