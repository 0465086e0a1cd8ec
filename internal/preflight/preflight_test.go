package preflight

import (
	"path/filepath"
	"testing"

	"singe/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Staging directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got %#v", result)
	}

	result = CheckDirectoryAccess("Staging directory", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatalf("expected failure for missing dir, got %#v", result)
	}

	file := filepath.Join(dir, "file")
	testsupport.WriteFile(t, file, 4)
	result = CheckDirectoryAccess("Staging directory", file)
	if result.Passed {
		t.Fatalf("expected failure for non-directory, got %#v", result)
	}
}

func TestCheckStagingSpace(t *testing.T) {
	result := CheckStagingSpace(t.TempDir())
	if result.Name != "Staging free space" {
		t.Fatalf("unexpected name %q", result.Name)
	}
	if result.Detail == "" {
		t.Fatal("expected free-space detail")
	}

	missing := CheckStagingSpace(filepath.Join(t.TempDir(), "absent"))
	if missing.Passed {
		t.Fatalf("statfs on missing path should fail, got %#v", missing)
	}
}

func TestRunAllReportsEveryCheck(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(cfg)
	// Three directories, free space, and six tools.
	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d: %#v", len(results), results)
	}
	names := make(map[string]bool, len(results))
	for _, result := range results {
		names[result.Name] = true
	}
	for _, want := range []string{"Staging directory", "Staging free space", "wodim", "ffmpeg", "ffprobe", "cdrdao", "sox", "cdparanoia"} {
		if !names[want] {
			t.Fatalf("missing check %q in %#v", want, results)
		}
	}
}

func TestFailedIgnoresOptional(t *testing.T) {
	results := []Result{
		{Name: "wodim", Passed: true},
		{Name: "sox", Passed: false, Optional: true},
	}
	if Failed(results) {
		t.Fatal("optional failures must not fail preflight")
	}
	results = append(results, Result{Name: "ffmpeg", Passed: false})
	if !Failed(results) {
		t.Fatal("required failure must fail preflight")
	}
}
