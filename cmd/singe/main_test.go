package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
staging_dir = %q
log_dir = %q
lock_dir = %q

[drive]
device = "/dev/sr0"

[verify]
enabled = true
algorithm = "sha256"
`,
		filepath.Join(base, "staging"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "locks"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func writeTrackFiles(t *testing.T, dir string, count int) []string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create track dir: %v", err)
	}
	paths := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		path := filepath.Join(dir, fmt.Sprintf("track%02d.wav", i))
		if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
			t.Fatalf("write track: %v", err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestCLIVersion(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "singe ")
}

func TestCLIHelpTopicListAndLookup(t *testing.T) {
	out, _, err := runCLI(t, []string{"help-topic"}, "")
	if err != nil {
		t.Fatalf("help-topic: %v", err)
	}
	requireContains(t, out, "multi-session")
	requireContains(t, out, "verification")

	out, _, err = runCLI(t, []string{"help-topic", "cd-text"}, "")
	if err != nil {
		t.Fatalf("help-topic cd-text: %v", err)
	}
	requireContains(t, out, "CD-Text")

	_, _, err = runCLI(t, []string{"help-topic", "no-such-topic"}, "")
	if err == nil {
		t.Fatal("expected error for unknown topic")
	}
}

func TestCLIPlaylistCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	tracks := writeTrackFiles(t, filepath.Join(env.baseDir, "album"), 2)

	playlist := filepath.Join(env.baseDir, "album.m3u")
	content := "#EXTM3U\n" + tracks[0] + "\n" + tracks[1] + "\nmissing.wav\nnotes.txt\n"
	if err := os.WriteFile(playlist, []byte(content), 0o644); err != nil {
		t.Fatalf("write playlist: %v", err)
	}

	out, errOut, err := runCLI(t, []string{"playlist", playlist}, "")
	if err != nil {
		t.Fatalf("playlist: %v", err)
	}
	requireContains(t, out, tracks[0])
	requireContains(t, out, tracks[1])
	requireContains(t, errOut, "missing.wav")
	requireContains(t, errOut, "notes.txt")
}

func TestCLICueExport(t *testing.T) {
	env := setupCLITestEnv(t)
	tracks := writeTrackFiles(t, filepath.Join(env.baseDir, "album"), 2)

	out, _, err := runCLI(t, []string{
		"cue", tracks[0], tracks[1],
		"--title", "Test Album",
	}, env.configPath)
	if err != nil {
		t.Fatalf("cue: %v", err)
	}
	requireContains(t, out, `TITLE "Test Album"`)
	requireContains(t, out, "TRACK 01 AUDIO")
	requireContains(t, out, "TRACK 02 AUDIO")
}
