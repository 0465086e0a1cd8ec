package queue

import "fmt"

// Batch is an ordered, passive collection of jobs. It is not safe for
// concurrent use; the workflow driver owns synchronization.
type Batch struct {
	jobs []*Job
}

// NewBatch builds a batch holding the given jobs in order.
func NewBatch(jobs ...*Job) *Batch {
	return &Batch{jobs: append([]*Job(nil), jobs...)}
}

// Add appends a job, preserving insertion order.
func (b *Batch) Add(job *Job) {
	b.jobs = append(b.jobs, job)
}

// Len reports the number of jobs.
func (b *Batch) Len() int {
	return len(b.jobs)
}

// Jobs returns the jobs in insertion order. The slice is a copy; the job
// pointers are shared.
func (b *Batch) Jobs() []*Job {
	return append([]*Job(nil), b.jobs...)
}

// Get returns the job at index.
func (b *Batch) Get(index int) (*Job, error) {
	if index < 0 || index >= len(b.jobs) {
		return nil, fmt.Errorf("%w: %d (batch holds %d)", ErrIndexOutOfRange, index, len(b.jobs))
	}
	return b.jobs[index], nil
}

// Remove deletes the job at index; later jobs shift down.
func (b *Batch) Remove(index int) (*Job, error) {
	job, err := b.Get(index)
	if err != nil {
		return nil, err
	}
	b.jobs = append(b.jobs[:index], b.jobs[index+1:]...)
	return job, nil
}

// NextPending returns the first pending job in insertion order, or
// ErrNoPendingJobs.
func (b *Batch) NextPending() (*Job, error) {
	for _, job := range b.jobs {
		if job.Status == StatusPending {
			return job, nil
		}
	}
	return nil, ErrNoPendingJobs
}

// BatchSummary carries per-status counts for a batch.
type BatchSummary struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
	Failed     int
	Skipped    int
}

// Summary recomputes counts from current job statuses on every call, so it
// reflects mutations made after enqueue. An empty batch reports zeros.
func (b *Batch) Summary() BatchSummary {
	summary := BatchSummary{Total: len(b.jobs)}
	for _, job := range b.jobs {
		switch job.Status {
		case StatusPending:
			summary.Pending++
		case StatusInProgress:
			summary.InProgress++
		case StatusCompleted:
			summary.Completed++
		case StatusFailed:
			summary.Failed++
		case StatusSkipped:
			summary.Skipped++
		}
	}
	return summary
}
