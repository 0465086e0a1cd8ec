package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"singe/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantStaging := filepath.Join(tempHome, ".local", "share", "singe", "staging")
	if cfg.Paths.StagingDir != wantStaging {
		t.Fatalf("unexpected staging dir: got %q want %q", cfg.Paths.StagingDir, wantStaging)
	}
	if cfg.Paths.LockDir != cfg.Paths.LogDir {
		t.Fatalf("expected lock dir to default to log dir, got %q", cfg.Paths.LockDir)
	}
	if cfg.Drive.Device != "/dev/sr0" {
		t.Fatalf("unexpected default device: %q", cfg.Drive.Device)
	}
	if cfg.Burning.CDMinutes != 80 {
		t.Fatalf("unexpected default capacity: %d", cfg.Burning.CDMinutes)
	}
	if !cfg.Verify.Enabled || cfg.Verify.Algorithm != "sha256" {
		t.Fatalf("unexpected verify defaults: %+v", cfg.Verify)
	}
}

func TestLoadParsesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
staging_dir = "` + filepath.Join(dir, "stage") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[drive]
device = "/dev/sr1"
speed = 4

[burning]
cd_minutes = 74

[verify]
algorithm = "MD5"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit file to resolve, got %q exists=%v", resolved, exists)
	}
	if cfg.Drive.Device != "/dev/sr1" || cfg.Drive.Speed != 4 {
		t.Fatalf("unexpected drive config: %+v", cfg.Drive)
	}
	if cfg.Burning.CDMinutes != 74 {
		t.Fatalf("unexpected capacity: %d", cfg.Burning.CDMinutes)
	}
	if cfg.Verify.Algorithm != "md5" {
		t.Fatalf("expected algorithm lowered, got %q", cfg.Verify.Algorithm)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"capacity", func(c *config.Config) { c.Burning.CDMinutes = 90 }},
		{"algorithm", func(c *config.Config) { c.Verify.Algorithm = "crc32" }},
		{"speed", func(c *config.Config) { c.Drive.Speed = -1 }},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"gap", func(c *config.Config) { c.Burning.GapSeconds = -2 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Verify.Algorithm = "sha256"
			cfg.Logging.Format = "console"
			cfg.Logging.Level = "info"
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(dir, "stage")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.LockDir = filepath.Join(dir, "locks")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, d := range []string{cfg.Paths.StagingDir, cfg.Paths.LogDir, cfg.Paths.LockDir} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: err=%v", d, err)
		}
	}
}
