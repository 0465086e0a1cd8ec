package queue

import (
	"fmt"
	"strings"
	"time"

	"singe/internal/checksum"
	"singe/internal/config"
)

// Status represents the lifecycle state of a burn job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
)

var allStatuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusFailed,
	StatusSkipped,
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range allStatuses {
		if status == normalized {
			return status, true
		}
	}
	return "", false
}

// Terminal reports whether no further transition is allowed from the status.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusSkipped:
		return true
	default:
		return false
	}
}

// Settings holds per-job burn parameters. The zero value is not useful; use
// DefaultSettings and override.
type Settings struct {
	DevicePath   string `json:"device_path,omitempty"`
	BurnSpeed    int    `json:"burn_speed"` // 0 lets the drive pick
	Verify       bool   `json:"verify"`
	FadeInMS     int    `json:"fade_in_ms"`
	FadeOutMS    int    `json:"fade_out_ms"`
	GapMS        int    `json:"gap_ms"`
	MultiSession bool   `json:"multi_session"`
	Normalize    bool   `json:"normalize"`
	CDText       bool   `json:"cd_text"`
	CDMinutes    int    `json:"cd_minutes"`
}

// DefaultSettings derives job settings from configuration defaults. The
// device path is left empty so burn time can fall back to detection when the
// drive is not pinned in config.
func DefaultSettings(cfg *config.Config) Settings {
	return Settings{
		BurnSpeed:    cfg.Drive.Speed,
		Verify:       cfg.Verify.Enabled,
		FadeInMS:     cfg.Burning.FadeInMS,
		FadeOutMS:    cfg.Burning.FadeOutMS,
		GapMS:        cfg.Burning.GapSeconds * 1000,
		MultiSession: cfg.Burning.MultiSession,
		Normalize:    cfg.Burning.Normalize,
		CDMinutes:    cfg.Burning.CDMinutes,
	}
}

// Job describes one disc's worth of files plus burn settings and lifecycle
// state. Files keep their declared order; track order is a burn-time
// invariant.
type Job struct {
	ID              int64
	Name            string
	Files           []string
	Settings        Settings
	Status          Status
	ErrorDetail     string
	Progress        float64
	ChecksumResults map[string]checksum.Record
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewJob builds a pending job. The store assigns IDs; in-memory batches may
// leave ID zero.
func NewJob(name string, files []string, settings Settings) *Job {
	now := time.Now().UTC()
	return &Job{
		Name:      name,
		Files:     append([]string(nil), files...),
		Settings:  settings,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (j *Job) transitionErr(to Status) error {
	return fmt.Errorf("%w: %s -> %s (job %q)", ErrInvalidStateTransition, j.Status, to, j.Name)
}

// Start moves the job to in-progress. Valid only from pending.
func (j *Job) Start() error {
	if j.Status != StatusPending {
		return j.transitionErr(StatusInProgress)
	}
	j.Status = StatusInProgress
	j.Progress = 0
	j.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete marks a successful burn, recording checksum results when
// verification ran. Valid only from in-progress.
func (j *Job) Complete(results map[string]checksum.Record) error {
	if j.Status != StatusInProgress {
		return j.transitionErr(StatusCompleted)
	}
	j.Status = StatusCompleted
	j.ChecksumResults = results
	j.ErrorDetail = ""
	j.Progress = 1
	j.UpdatedAt = time.Now().UTC()
	return nil
}

// Fail marks the job failed with a human-readable detail. Valid only from
// in-progress.
func (j *Job) Fail(detail string) error {
	if j.Status != StatusInProgress {
		return j.transitionErr(StatusFailed)
	}
	j.Status = StatusFailed
	j.ErrorDetail = detail
	j.UpdatedAt = time.Now().UTC()
	return nil
}

// Skip excludes a job the user decided not to burn. Valid only from pending.
func (j *Job) Skip() error {
	if j.Status != StatusPending {
		return j.transitionErr(StatusSkipped)
	}
	j.Status = StatusSkipped
	j.UpdatedAt = time.Now().UTC()
	return nil
}

// SetProgress records the completion fraction in [0, 1] while in-progress.
func (j *Job) SetProgress(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	j.Progress = fraction
	j.UpdatedAt = time.Now().UTC()
}

// Verified reports whether verification ran and recorded digests.
func (j *Job) Verified() bool {
	return j.Settings.Verify && len(j.ChecksumResults) > 0
}

// Summary is the per-status report variant. Each status carries exactly the
// fields it needs; switch over the concrete types.
type Summary interface {
	JobStatus() Status
}

type PendingSummary struct {
	Name      string
	FileCount int
}

func (PendingSummary) JobStatus() Status { return StatusPending }

type InProgressSummary struct {
	Name      string
	FileCount int
	Progress  float64
}

func (InProgressSummary) JobStatus() Status { return StatusInProgress }

type CompletedSummary struct {
	Name            string
	FileCount       int
	Verified        bool
	ChecksumResults map[string]checksum.Record
}

func (CompletedSummary) JobStatus() Status { return StatusCompleted }

type FailedSummary struct {
	Name        string
	FileCount   int
	ErrorDetail string
}

func (FailedSummary) JobStatus() Status { return StatusFailed }

type SkippedSummary struct {
	Name string
}

func (SkippedSummary) JobStatus() Status { return StatusSkipped }

// Summary returns the status-shaped report for the job.
func (j *Job) Summary() Summary {
	switch j.Status {
	case StatusInProgress:
		return InProgressSummary{Name: j.Name, FileCount: len(j.Files), Progress: j.Progress}
	case StatusCompleted:
		return CompletedSummary{
			Name:            j.Name,
			FileCount:       len(j.Files),
			Verified:        j.Verified(),
			ChecksumResults: j.ChecksumResults,
		}
	case StatusFailed:
		return FailedSummary{Name: j.Name, FileCount: len(j.Files), ErrorDetail: j.ErrorDetail}
	case StatusSkipped:
		return SkippedSummary{Name: j.Name}
	default:
		return PendingSummary{Name: j.Name, FileCount: len(j.Files)}
	}
}
