package queue_test

import (
	"context"
	"errors"
	"testing"

	"singe/internal/checksum"
	"singe/internal/queue"
	"singe/internal/testsupport"
)

func TestStoreRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	settings := queue.Settings{BurnSpeed: 8, Verify: true, GapMS: 2000, CDMinutes: 80}
	job, err := store.NewJob(ctx, "road trip", []string{"/music/a.mp3", "/music/b.flac"}, settings)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	if job.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if job.Status != queue.StatusPending {
		t.Fatalf("expected pending, got %s", job.Status)
	}

	loaded, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if loaded.Name != "road trip" || len(loaded.Files) != 2 || loaded.Settings != settings {
		t.Fatalf("round trip mismatch: %#v", loaded)
	}
}

func TestStoreUpdatePersistsStatusAndChecksums(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job := testsupport.NewJob(t, store, "mix", []string{"a.mp3"}, queue.Settings{Verify: true})
	if err := job.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	results := map[string]checksum.Record{
		"a.mp3": {Algorithm: checksum.SHA256, Digest: "deadbeef", SourcePath: "a.mp3"},
	}
	if err := job.Complete(results); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("Update: %v", err)
	}

	loaded, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if loaded.Status != queue.StatusCompleted {
		t.Fatalf("expected completed, got %s", loaded.Status)
	}
	record, ok := loaded.ChecksumResults["a.mp3"]
	if !ok || record.Digest != "deadbeef" || record.Algorithm != checksum.SHA256 {
		t.Fatalf("checksum results lost: %#v", loaded.ChecksumResults)
	}
}

func TestStoreNextPendingOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := testsupport.NewJob(t, store, "first", []string{"a.mp3"}, queue.Settings{})
	testsupport.NewJob(t, store, "second", []string{"b.mp3"}, queue.Settings{})

	job, err := store.NextPending(ctx)
	if err != nil {
		t.Fatalf("NextPending: %v", err)
	}
	if job.ID != first.ID {
		t.Fatalf("expected oldest pending job %d, got %d", first.ID, job.ID)
	}

	_ = job.Start()
	_ = job.Complete(nil)
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("Update: %v", err)
	}

	job, err = store.NextPending(ctx)
	if err != nil {
		t.Fatalf("NextPending after completion: %v", err)
	}
	if job.Name != "second" {
		t.Fatalf("expected second, got %s", job.Name)
	}
}

func TestStoreNextPendingEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.NextPending(context.Background()); !errors.Is(err, queue.ErrNoPendingJobs) {
		t.Fatalf("expected ErrNoPendingJobs, got %v", err)
	}
}

func TestStoreRemove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job := testsupport.NewJob(t, store, "doomed", []string{"x.wav"}, queue.Settings{})
	if err := store.Remove(ctx, job.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.GetByID(ctx, job.ID); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Remove(ctx, job.ID); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("double remove should report ErrNotFound, got %v", err)
	}
}

func TestStoreStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	a := testsupport.NewJob(t, store, "a", []string{"a.mp3"}, queue.Settings{})
	testsupport.NewJob(t, store, "b", []string{"b.mp3"}, queue.Settings{})
	c := testsupport.NewJob(t, store, "c", []string{"c.mp3"}, queue.Settings{})

	_ = a.Start()
	_ = a.Fail("no media")
	if err := store.Update(ctx, a); err != nil {
		t.Fatalf("Update a: %v", err)
	}
	_ = c.Skip()
	if err := store.Update(ctx, c); err != nil {
		t.Fatalf("Update c: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := queue.BatchSummary{Total: 3, Pending: 1, Failed: 1, Skipped: 1}
	if stats != want {
		t.Fatalf("stats = %#v, want %#v", stats, want)
	}
}

func TestStoreClearCompletedKeepsFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	done := testsupport.NewJob(t, store, "done", []string{"a.mp3"}, queue.Settings{})
	_ = done.Start()
	_ = done.Complete(nil)
	if err := store.Update(ctx, done); err != nil {
		t.Fatalf("Update done: %v", err)
	}

	failed := testsupport.NewJob(t, store, "failed", []string{"b.mp3"}, queue.Settings{})
	_ = failed.Start()
	_ = failed.Fail("burn exited 1")
	if err := store.Update(ctx, failed); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	removed, err := store.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	jobs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Name != "failed" {
		t.Fatalf("expected only the failed job to remain, got %#v", jobs)
	}
}

func TestStoreLoadPreservesOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	names := []string{"one", "two", "three"}
	for _, name := range names {
		testsupport.NewJob(t, store, name, []string{name + ".mp3"}, queue.Settings{})
	}

	batch, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if batch.Len() != 3 {
		t.Fatalf("expected 3 jobs, got %d", batch.Len())
	}
	for i, name := range names {
		job, err := batch.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if job.Name != name {
			t.Fatalf("index %d: expected %s, got %s", i, name, job.Name)
		}
	}
}

func TestStoreReopenKeepsJobs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.NewJob(t, store, "persist", []string{"a.mp3"}, queue.Settings{})
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	jobs, err := reopened.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Name != "persist" {
		t.Fatalf("expected persisted job after reopen, got %#v", jobs)
	}
}
