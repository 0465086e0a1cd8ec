// Package burning turns a queued job into a finished disc: capacity checks,
// WAV staging, the burn itself, and post-burn verification.
package burning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"singe/internal/checksum"
	"singe/internal/config"
	"singe/internal/disc"
	"singe/internal/logging"
	"singe/internal/progress"
	"singe/internal/queue"
	"singe/internal/services"
	"singe/internal/services/ffmpeg"
)

// DeviceDetector discovers a burner when the job does not name one.
type DeviceDetector interface {
	DetectDevice(ctx context.Context) (string, error)
}

// StatusChecker probes the medium in a drive.
type StatusChecker interface {
	CheckStatus(ctx context.Context, device string) (disc.Status, error)
}

// Encoder stages source audio as Red Book WAV files.
type Encoder interface {
	DurationProber
	ConvertToWAV(ctx context.Context, inPath, outPath string, opts ffmpeg.ConvertOptions) error
}

// Normalizer levels a staged WAV. Failures are tolerated; the unnormalized
// file is burned instead.
type Normalizer interface {
	Normalize(ctx context.Context, inPath, outPath string) error
}

// TOCBurner writes a disc from a cdrdao table of contents.
type TOCBurner interface {
	Write(ctx context.Context, device string, speed int, tocPath string, eject, multiSession bool, onProgress func(line string)) error
}

// TrackBurner writes WAV tracks directly; used when the TOC burner cannot be
// launched at all.
type TrackBurner interface {
	Burn(ctx context.Context, device string, speed int, wavFiles []string, eject bool) error
}

// Deps bundles the writer's external collaborators.
type Deps struct {
	Detector    DeviceDetector
	Inspector   StatusChecker
	Encoder     Encoder
	Normalizer  Normalizer // nil disables normalization
	TOCBurner   TOCBurner
	TrackBurner TrackBurner // nil disables the fallback path
}

// ProgressFunc receives tracker updates for rendering.
type ProgressFunc func(current, total int, suffix string)

// Option configures a Writer beyond its required dependencies.
type Option func(*Writer)

// WithChecksumFuncs overrides digest computation and verification
// (primarily for tests).
func WithChecksumFuncs(
	compute func(path string, algorithm checksum.Algorithm) (checksum.Record, error),
	verify func(expected checksum.Record, path string) (bool, error),
) Option {
	return func(w *Writer) {
		if compute != nil {
			w.compute = compute
		}
		if verify != nil {
			w.verify = verify
		}
	}
}

// WithProgressFunc registers a rendering callback.
func WithProgressFunc(fn ProgressFunc) Option {
	return func(w *Writer) {
		w.onProgress = fn
	}
}

// WithRunID overrides run token generation (primarily for tests).
func WithRunID(fn func() string) Option {
	return func(w *Writer) {
		if fn != nil {
			w.newRunID = fn
		}
	}
}

// Writer executes one burn job end to end. Operational failures land in the
// job's status and error detail; only caller errors (bad state transitions)
// are returned.
type Writer struct {
	deps       Deps
	stagingDir string
	eject      bool
	algorithm  checksum.Algorithm
	logger     *slog.Logger

	compute    func(path string, algorithm checksum.Algorithm) (checksum.Record, error)
	verify     func(expected checksum.Record, path string) (bool, error)
	newRunID   func() string
	onProgress ProgressFunc
}

// NewWriter builds a Writer from config and collaborators.
func NewWriter(cfg *config.Config, deps Deps, logger *slog.Logger, opts ...Option) (*Writer, error) {
	if deps.Inspector == nil || deps.Encoder == nil || deps.TOCBurner == nil {
		return nil, errors.New("burning: inspector, encoder, and toc burner are required")
	}
	algorithm, err := checksum.ParseAlgorithm(cfg.Verify.Algorithm)
	if err != nil {
		return nil, err
	}

	w := &Writer{
		deps:       deps,
		stagingDir: cfg.Paths.StagingDir,
		eject:      cfg.Drive.Eject,
		algorithm:  algorithm,
		logger:     logging.NewComponentLogger(logger, "burn-writer"),
		compute:    checksum.Compute,
		verify:     checksum.Verify,
		newRunID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Execute runs the job. The job must be pending; anything else returns
// ErrInvalidStateTransition to the caller.
func (w *Writer) Execute(ctx context.Context, job *queue.Job) error {
	if err := job.Start(); err != nil {
		return err
	}

	runID := w.newRunID()
	log := w.logger.With(
		logging.String(logging.FieldJobName, job.Name),
		logging.Int64(logging.FieldJobID, job.ID),
		logging.String(logging.FieldRunID, runID),
	)

	// One tracker unit per encoded file plus one for the burn itself.
	tracker := progress.NewTracker(len(job.Files) + 1)
	report := func(suffix string) {
		tracker.Apply(progress.Update{Current: currentPtr(tracker), Suffix: suffix})
		if w.onProgress != nil {
			w.onProgress(tracker.Current(), tracker.Total(), tracker.Suffix())
		}
	}
	advance := func(suffix string) {
		tracker.Apply(progress.Update{Suffix: suffix})
		if w.onProgress != nil {
			w.onProgress(tracker.Current(), tracker.Total(), tracker.Suffix())
		}
	}

	fail := func(step, detail string) error {
		log.Error("burn step failed",
			logging.String(logging.FieldStep, step),
			logging.String("detail", detail))
		if err := job.Fail(detail); err != nil {
			return err
		}
		return nil
	}
	cancelled := func(step, device string) error {
		detail := fmt.Sprintf("%v: job %q %s interrupted", ErrCancelled, job.Name, step)
		if device != "" {
			detail = fmt.Sprintf("%v: job %q %s on device %s interrupted", ErrCancelled, job.Name, step, device)
		}
		return fail(step, detail)
	}

	if len(job.Files) == 0 {
		return fail("validate", fmt.Sprintf("job %q has no files", job.Name))
	}

	// Capacity fit runs before any device I/O.
	gapSeconds := job.Settings.GapMS / 1000
	report("checking capacity")
	capacityReport, err := ComputeCapacity(ctx, w.deps.Encoder, job.Files, gapSeconds, job.Settings.CDMinutes)
	if err != nil {
		if ctx.Err() != nil {
			return cancelled("capacity check", "")
		}
		return fail("capacity check", fmt.Sprintf("job %q: %v", job.Name, err))
	}
	if !capacityReport.Fits {
		return fail("capacity check", fmt.Sprintf("%v: job %q: %s", ErrCapacityExceeded, job.Name, capacityReport.Warning))
	}
	if capacityReport.Warning != "" {
		log.Warn("disc nearly full", logging.String("detail", capacityReport.Warning))
	}

	// Resolve the device.
	device := job.Settings.DevicePath
	if device == "" {
		if w.deps.Detector == nil {
			return fail("resolve device", fmt.Sprintf("%v: job %q names no device and detection is unavailable", ErrDeviceNotFound, job.Name))
		}
		device, err = w.deps.Detector.DetectDevice(ctx)
		if err != nil {
			return fail("resolve device", fmt.Sprintf("%v: job %q: %v", ErrDeviceNotFound, job.Name, err))
		}
	}
	log.Info("device resolved", logging.String(logging.FieldDevice, device))

	// Disc state gate: only blank media is burned unless the job is an
	// explicit multi-session append. Appending to an audio session is never
	// allowed; audio players stop at the first session.
	status, err := w.deps.Inspector.CheckStatus(ctx, device)
	if err != nil {
		return fail("probe disc", fmt.Sprintf("job %q device %s: disc status unknown: %v", job.Name, device, err))
	}
	switch status {
	case disc.StatusNoDisc:
		return fail("probe disc", fmt.Sprintf("%v: job %q device %s", ErrNoMediaPresent, job.Name, device))
	case disc.StatusData:
		if !job.Settings.MultiSession {
			return fail("probe disc", fmt.Sprintf("%v: job %q device %s holds a data session; enable multi_session to append", ErrMediaNotBlank, job.Name, device))
		}
	case disc.StatusAudio:
		return fail("probe disc", fmt.Sprintf("%v: job %q device %s holds an audio session; audio discs cannot be appended", ErrMediaNotBlank, job.Name, device))
	case disc.StatusUnknown:
		return fail("probe disc", fmt.Sprintf("job %q device %s: disc status unknown; not burning blind", job.Name, device))
	}

	// Staging workspace for WAVs and the TOC.
	workDir := filepath.Join(w.stagingDir, "burn-"+runID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fail("stage", fmt.Sprintf("job %q: create staging dir: %v", job.Name, err))
	}
	defer func() {
		_ = os.RemoveAll(workDir)
	}()

	// Source digests recorded on the completed job.
	var results map[string]checksum.Record
	if job.Settings.Verify {
		results = make(map[string]checksum.Record, len(job.Files))
		for _, file := range job.Files {
			record, err := w.compute(file, w.algorithm)
			if err != nil {
				return fail("checksum", fmt.Sprintf("job %q file %s: %v", job.Name, file, err))
			}
			results[file] = record
		}
	}

	// Encode every track; a single failure aborts the job because track
	// order and count are burn-time invariants.
	wavFiles := make([]string, 0, len(job.Files))
	for i, file := range job.Files {
		advance(fmt.Sprintf("encoding %s", filepath.Base(file)))

		src := file
		if job.Settings.Normalize && w.deps.Normalizer != nil {
			normPath := filepath.Join(workDir, fmt.Sprintf("norm_%02d.wav", i+1))
			if err := w.deps.Normalizer.Normalize(ctx, src, normPath); err != nil {
				if ctx.Err() != nil {
					return cancelled("normalize", device)
				}
				log.Warn("normalization failed, using original audio",
					logging.String("file", file), logging.Error(err))
			} else {
				src = normPath
			}
		}

		wavPath := filepath.Join(workDir, fmt.Sprintf("track_%02d.wav", i+1))
		convertOpts := ffmpeg.ConvertOptions{
			FadeInMS:              job.Settings.FadeInMS,
			FadeOutMS:             job.Settings.FadeOutMS,
			GapMS:                 job.Settings.GapMS,
			SourceDurationSeconds: capacityReport.TrackSeconds[i],
		}
		if err := w.deps.Encoder.ConvertToWAV(ctx, src, wavPath, convertOpts); err != nil {
			if ctx.Err() != nil {
				return cancelled("encode", device)
			}
			return fail("encode", fmt.Sprintf("job %q device %s file %s: encode failed: %v", job.Name, device, file, err))
		}
		wavFiles = append(wavFiles, wavPath)
		job.SetProgress(tracker.Fraction())
	}

	// Staged digests guard against corruption between encode and burn.
	var stagedRecords []checksum.Record
	if job.Settings.Verify {
		stagedRecords = make([]checksum.Record, len(wavFiles))
		for i, wav := range wavFiles {
			record, err := w.compute(wav, w.algorithm)
			if err != nil {
				return fail("checksum", fmt.Sprintf("job %q staged track %d: %v", job.Name, i+1, err))
			}
			stagedRecords[i] = record
		}
	}

	advance("burning")
	tocPath := filepath.Join(workDir, "audio.toc")
	tracks := make([]TOCTrack, len(wavFiles))
	for i, wav := range wavFiles {
		tracks[i] = TOCTrack{File: wav, Title: fmt.Sprintf("Track %d", i+1)}
	}
	tocOpts := TOCOptions{CDText: job.Settings.CDText, AlbumTitle: job.Name}
	if err := WriteTOCFile(tocPath, tracks, tocOpts); err != nil {
		return fail("burn", fmt.Sprintf("job %q: %v", job.Name, err))
	}

	if err := w.burn(ctx, log, device, job.Settings, tocPath, wavFiles); err != nil {
		if ctx.Err() != nil {
			return cancelled("burn", device)
		}
		return fail("burn", fmt.Sprintf("job %q device %s: %v", job.Name, device, err))
	}
	job.SetProgress(tracker.Fraction())

	// Post-burn verification: the staged tracks that went to the burner must
	// still match their pre-burn digests. A mismatch fails the job even
	// though the write nominally succeeded.
	if job.Settings.Verify {
		for i, record := range stagedRecords {
			ok, err := w.verify(record, wavFiles[i])
			if err != nil {
				return fail("verify", fmt.Sprintf("job %q track %d: %v", job.Name, i+1, err))
			}
			if !ok {
				return fail("verify", fmt.Sprintf("%v: job %q device %s track %d (%s)", ErrVerificationMismatch, job.Name, device, i+1, filepath.Base(job.Files[i])))
			}
		}
	}

	if err := job.Complete(results); err != nil {
		return err
	}
	tracker.Finish()
	if w.onProgress != nil {
		w.onProgress(tracker.Current(), tracker.Total(), "done")
	}
	log.Info("burn completed",
		logging.String(logging.FieldDevice, device),
		logging.Int("tracks", len(wavFiles)),
		logging.Bool("verified", job.Verified()))
	return nil
}

// burn writes the disc via cdrdao. The wodim path runs only when cdrdao
// cannot be launched at all; once cdrdao has touched the disc a retry could
// write to non-blank media, so burn failures are terminal.
func (w *Writer) burn(ctx context.Context, log *slog.Logger, device string, settings queue.Settings, tocPath string, wavFiles []string) error {
	err := w.deps.TOCBurner.Write(ctx, device, settings.BurnSpeed, tocPath, w.eject, settings.MultiSession, func(line string) {
		log.Debug("cdrdao", logging.String("line", line))
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, services.ErrProcessSpawn) || w.deps.TrackBurner == nil {
		return err
	}

	log.Warn("cdrdao unavailable, burning with wodim", logging.Error(err))
	return w.deps.TrackBurner.Burn(ctx, device, settings.BurnSpeed, wavFiles, w.eject)
}

func currentPtr(t *progress.Tracker) *int {
	current := t.Current()
	return &current
}
