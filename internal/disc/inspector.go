package disc

import (
	"context"
	"log/slog"
	"strings"

	"singe/internal/logging"
	"singe/internal/services"
)

// prober abstracts the cdrdao disc-info probe so tests can feed canned
// transcripts.
type prober interface {
	DiscInfo(ctx context.Context, device string) (services.Result, error)
}

// Inspector classifies the medium in a drive by running a read-only probe.
type Inspector struct {
	probe  prober
	logger *slog.Logger
}

// NewInspector constructs an inspector around a cdrdao-compatible probe.
func NewInspector(probe prober, logger *slog.Logger) *Inspector {
	return &Inspector{
		probe:  probe,
		logger: logging.NewComponentLogger(logger, "disc-inspector"),
	}
}

// CheckStatus probes the device and classifies the result. A probe that
// fails to start yields StatusUnknown together with the error; callers must
// not treat that as an empty tray. Output that cannot be classified also
// yields StatusUnknown, without an error. Nothing on the disc is mutated.
func (i *Inspector) CheckStatus(ctx context.Context, device string) (Status, error) {
	res, err := i.probe.DiscInfo(ctx, device)
	if err != nil {
		i.logger.Warn("medium probe failed to run",
			logging.String(logging.FieldDevice, device),
			logging.Error(err))
		return StatusUnknown, err
	}

	status := Classify(res.Stdout + "\n" + res.Stderr)
	i.logger.Debug("medium probed",
		logging.String(logging.FieldDevice, device),
		logging.String("status", status.String()))
	return status, nil
}

// Classify maps a disc-info transcript to a Status. cdrdao reports the
// interesting facts on lines like "CD-R empty : yes" and signals an empty
// tray with "Unit not ready" or "No disk"; older builds print prose such as
// "Disk is blank".
func Classify(transcript string) Status {
	lower := strings.ToLower(transcript)

	for _, marker := range []string{"no disk", "no disc", "unit not ready", "medium not present", "cannot get disk information", "drive is empty"} {
		if strings.Contains(lower, marker) {
			return StatusNoDisc
		}
	}

	for _, line := range strings.Split(lower, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case matchesField(line, "cd-r empty", "yes"),
			strings.Contains(line, "disk is blank"),
			strings.Contains(line, "disc is blank"):
			return StatusBlank
		}
	}

	switch {
	case strings.Contains(lower, "cd-da"), strings.Contains(lower, "audio cd"), strings.Contains(lower, "track audio"):
		return StatusAudio
	case strings.Contains(lower, "cd-rom"), strings.Contains(lower, "data cd"), matchesAnyField(lower, "cd-r empty", "no"):
		return StatusData
	default:
		return StatusUnknown
	}
}

// matchesField reports whether a "key : value" disc-info line carries the
// given key and value.
func matchesField(line, key, value string) bool {
	k, v, ok := strings.Cut(line, ":")
	if !ok {
		return false
	}
	return strings.TrimSpace(k) == key && strings.TrimSpace(v) == value
}

func matchesAnyField(transcript, key, value string) bool {
	for _, line := range strings.Split(transcript, "\n") {
		if matchesField(strings.TrimSpace(line), key, value) {
			return true
		}
	}
	return false
}
