// Package disc inspects optical media state and watches for media insertion
// events.
package disc

// Status describes what the drive currently holds. It is derived fresh on
// every probe; media can be swapped between queries, so callers must not
// cache it.
type Status int

const (
	// StatusUnknown means the probe failed to start or its output could not
	// be classified. Distinct from StatusNoDisc: an unknown drive state calls
	// for a retry or operator attention, not a "please insert a disc" prompt.
	StatusUnknown Status = iota
	// StatusNoDisc means the tray is empty or holds no readable medium.
	StatusNoDisc
	// StatusBlank means a writable medium with no recorded session.
	StatusBlank
	// StatusData means a medium carrying a data session.
	StatusData
	// StatusAudio means a medium carrying an audio session.
	StatusAudio
)

func (s Status) String() string {
	switch s {
	case StatusNoDisc:
		return "no-disc"
	case StatusBlank:
		return "blank"
	case StatusData:
		return "data"
	case StatusAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// Writable reports whether a fresh audio session can be burned without
// overwriting anything.
func (s Status) Writable() bool {
	return s == StatusBlank
}

// HasMedium reports whether a disc is physically present.
func (s Status) HasMedium() bool {
	switch s {
	case StatusBlank, StatusData, StatusAudio:
		return true
	default:
		return false
	}
}
