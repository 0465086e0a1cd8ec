package queue

import "errors"

var (
	// ErrInvalidStateTransition reports an attempt to move a job to a status
	// its current status does not allow. This is a caller error and is never
	// absorbed into job state.
	ErrInvalidStateTransition = errors.New("invalid job state transition")

	// ErrIndexOutOfRange reports a batch index outside [0, len).
	ErrIndexOutOfRange = errors.New("job index out of range")

	// ErrNoPendingJobs reports that a batch holds no job in the pending state.
	ErrNoPendingJobs = errors.New("no pending jobs")

	// ErrNotFound reports a job id absent from the store.
	ErrNotFound = errors.New("job not found")

	// ErrSchemaMismatch indicates the queue database was created by an
	// incompatible version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)
