// Package workflow drives the batch: it pulls pending jobs from the store,
// serializes burns per device, and runs distinct devices concurrently.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"singe/internal/config"
	"singe/internal/logging"
	"singe/internal/queue"
)

// JobExecutor runs one job end to end; satisfied by burning.Writer.
type JobExecutor interface {
	Execute(ctx context.Context, job *queue.Job) error
}

// MediaWaiter blocks until blank media is present in a device; satisfied by
// disc.Monitor.
type MediaWaiter interface {
	WaitForBlankMedia(ctx context.Context, device string) error
}

// Option configures optional Manager behavior.
type Option func(*Manager)

// WithMediaWaiter makes the manager wait for a fresh blank disc between jobs
// on the same device instead of failing the next job immediately.
func WithMediaWaiter(waiter MediaWaiter) Option {
	return func(m *Manager) {
		m.waiter = waiter
	}
}

// Manager coordinates a batch run over the persisted queue.
type Manager struct {
	cfg    *config.Config
	store  *queue.Store
	exec   JobExecutor
	waiter MediaWaiter
	logger *slog.Logger

	mu      sync.Mutex
	current *queue.Job
}

// NewManager constructs a workflow manager.
func NewManager(cfg *config.Config, store *queue.Store, exec JobExecutor, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		cfg:    cfg,
		store:  store,
		exec:   exec,
		logger: logging.NewComponentLogger(logger, "workflow"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunResult summarizes a batch run.
type RunResult struct {
	Executed int
	Summary  queue.BatchSummary
}

// Run executes every pending job. Jobs for the same device serialize;
// distinct devices proceed concurrently. A failed job never aborts the rest
// of the batch, and nothing is retried automatically. Run refuses to start
// when another singe batch holds the run lock.
func (m *Manager) Run(ctx context.Context) (RunResult, error) {
	runLock := flock.New(filepath.Join(m.cfg.Paths.LockDir, "singe.lock"))
	locked, err := runLock.TryLock()
	if err != nil {
		return RunResult{}, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return RunResult{}, fmt.Errorf("another singe batch is already running (lock %s)", runLock.Path())
	}
	defer func() {
		_ = runLock.Unlock()
	}()

	jobs, err := m.store.List(ctx)
	if err != nil {
		return RunResult{}, err
	}

	byDevice := make(map[string][]*queue.Job)
	var devices []string
	for _, job := range jobs {
		if job.Status != queue.StatusPending {
			continue
		}
		device := m.resolveDevice(job)
		if _, seen := byDevice[device]; !seen {
			devices = append(devices, device)
		}
		byDevice[device] = append(byDevice[device], job)
	}
	if len(devices) == 0 {
		summary, err := m.store.Stats(ctx)
		if err != nil {
			return RunResult{}, err
		}
		return RunResult{Summary: summary}, nil
	}

	var executed int
	var executedMu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	for _, device := range devices {
		device := device
		deviceJobs := byDevice[device]
		group.Go(func() error {
			count, err := m.runDevice(groupCtx, device, deviceJobs)
			executedMu.Lock()
			executed += count
			executedMu.Unlock()
			return err
		})
	}
	runErr := group.Wait()

	summary, statsErr := m.store.Stats(context.WithoutCancel(ctx))
	if runErr != nil {
		return RunResult{Executed: executed, Summary: summary}, runErr
	}
	return RunResult{Executed: executed, Summary: summary}, statsErr
}

// runDevice burns a device's jobs one at a time under a per-device lock so
// two singe processes never write to the same drive.
func (m *Manager) runDevice(ctx context.Context, device string, jobs []*queue.Job) (int, error) {
	log := m.logger.With(logging.String(logging.FieldDevice, device))

	deviceLock := flock.New(filepath.Join(m.cfg.Paths.LockDir, deviceLockName(device)))
	locked, err := deviceLock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("acquire device lock for %s: %w", device, err)
	}
	if !locked {
		return 0, fmt.Errorf("device %s is locked by another process", device)
	}
	defer func() {
		_ = deviceLock.Unlock()
	}()

	executed := 0
	for i, job := range jobs {
		if ctx.Err() != nil {
			log.Info("batch interrupted", logging.Int("remaining", len(jobs)-i))
			return executed, nil
		}

		if i > 0 && m.waiter != nil {
			log.Info("waiting for next blank disc",
				logging.String(logging.FieldJobName, job.Name))
			if err := m.waiter.WaitForBlankMedia(ctx, device); err != nil {
				log.Info("media wait ended", logging.Error(err))
				return executed, nil
			}
		}

		m.setCurrent(job)
		log.Info("job started",
			logging.Int64(logging.FieldJobID, job.ID),
			logging.String(logging.FieldJobName, job.Name))

		execErr := m.exec.Execute(ctx, job)

		// Persist whatever state the executor left, even on structural
		// errors, so the queue reflects reality.
		if updateErr := m.store.Update(context.WithoutCancel(ctx), job); updateErr != nil {
			log.Error("persist job state", logging.Error(updateErr))
			if execErr == nil {
				execErr = updateErr
			}
		}
		m.setCurrent(nil)
		executed++

		if execErr != nil {
			return executed, execErr
		}
		log.Info("job finished",
			logging.Int64(logging.FieldJobID, job.ID),
			logging.String("status", string(job.Status)))
	}
	return executed, nil
}

// Current returns the job being executed right now, if any.
func (m *Manager) Current() *queue.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manager) setCurrent(job *queue.Job) {
	m.mu.Lock()
	m.current = job
	m.mu.Unlock()
}

func (m *Manager) resolveDevice(job *queue.Job) string {
	if job.Settings.DevicePath != "" {
		return job.Settings.DevicePath
	}
	return m.cfg.Drive.Device
}

// deviceLockName turns "/dev/sr0" into "singe-dev-sr0.lock".
func deviceLockName(device string) string {
	sanitized := strings.Trim(strings.ReplaceAll(device, "/", "-"), "-")
	return "singe-" + sanitized + ".lock"
}
