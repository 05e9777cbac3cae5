package scheduler

import "errors"

var (
	// ErrSchedulerRunning is returned when a job is added after Start.
	ErrSchedulerRunning = errors.New("scheduler is already running")

	// ErrInvalidJob is returned for a job without a name, interval or func.
	ErrInvalidJob = errors.New("invalid scheduled job")

	// ErrDuplicateJob is returned when a job name is registered twice.
	ErrDuplicateJob = errors.New("duplicate scheduled job")
)
