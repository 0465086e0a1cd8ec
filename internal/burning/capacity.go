package burning

import (
	"context"
	"fmt"
)

// Capacity warning thresholds as fractions of disc capacity.
const (
	warnThreshold     = 0.90
	criticalThreshold = 0.95
)

// DurationProber measures an audio file's length; satisfied by the ffmpeg
// client.
type DurationProber interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// CapacityReport describes how a track list fits a target disc.
type CapacityReport struct {
	TrackSeconds    []float64
	TotalSeconds    float64 // audio plus inter-track gaps
	CapacitySeconds int
	CapacityBytes   int64
	Fits            bool
	Fraction        float64
	Warning         string // non-empty above the warn threshold
}

// ComputeCapacity probes every file's duration and checks the total,
// including the (n-1) inter-track gaps, against the disc capacity for
// cdMinutes. It performs no device I/O.
func ComputeCapacity(ctx context.Context, prober DurationProber, files []string, gapSeconds, cdMinutes int) (CapacityReport, error) {
	report := CapacityReport{
		CapacitySeconds: CapacitySeconds(cdMinutes),
	}
	report.CapacityBytes = int64(report.CapacitySeconds) * RedBookBytesPerSecond

	for _, file := range files {
		seconds, err := prober.ProbeDuration(ctx, file)
		if err != nil {
			return report, fmt.Errorf("probe duration of %s: %w", file, err)
		}
		report.TrackSeconds = append(report.TrackSeconds, seconds)
		report.TotalSeconds += seconds
	}
	if len(files) > 1 {
		report.TotalSeconds += float64((len(files) - 1) * gapSeconds)
	}

	report.Fraction = report.TotalSeconds / float64(report.CapacitySeconds)
	report.Fits = report.TotalSeconds <= float64(report.CapacitySeconds)

	switch {
	case !report.Fits:
		report.Warning = fmt.Sprintf("audio runs %.0f s but the disc holds %d s", report.TotalSeconds, report.CapacitySeconds)
	case report.Fraction > criticalThreshold:
		report.Warning = fmt.Sprintf("disc will be %.1f%% full; lead-out may be tight", report.Fraction*100)
	case report.Fraction > warnThreshold:
		report.Warning = fmt.Sprintf("disc will be %.1f%% full", report.Fraction*100)
	}
	return report, nil
}
