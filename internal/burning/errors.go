package burning

import "errors"

var (
	// ErrDeviceNotFound means no usable burner device could be resolved.
	ErrDeviceNotFound = errors.New("no usable CD device found")

	// ErrNoMediaPresent means the tray is empty.
	ErrNoMediaPresent = errors.New("no disc in drive")

	// ErrMediaNotBlank means the disc carries a recorded session and the job
	// did not request a multi-session append.
	ErrMediaNotBlank = errors.New("disc is not blank")

	// ErrVerificationMismatch means a post-burn checksum did not match.
	ErrVerificationMismatch = errors.New("checksum verification mismatch")

	// ErrCancelled means the burn was cancelled and the external process
	// terminated.
	ErrCancelled = errors.New("burn cancelled")

	// ErrCapacityExceeded means the job's audio does not fit the target disc.
	ErrCapacityExceeded = errors.New("audio exceeds disc capacity")
)
