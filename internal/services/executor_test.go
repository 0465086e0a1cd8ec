package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCommandExecutorCapturesOutput(t *testing.T) {
	var streamed []string
	res, err := CommandExecutor{}.Run(context.Background(), Command{
		Binary:   "sh",
		Args:     []string{"-c", "echo out-line; echo err-line >&2"},
		OnStdout: func(line string) { streamed = append(streamed, line) },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("unexpected exit code %d", res.ExitCode)
	}
	if !strings.Contains(res.Stdout, "out-line") || !strings.Contains(res.Stderr, "err-line") {
		t.Fatalf("unexpected capture: %+v", res)
	}
	if len(streamed) != 1 || streamed[0] != "out-line" {
		t.Fatalf("unexpected streamed lines: %v", streamed)
	}
}

func TestCommandExecutorReportsExitCode(t *testing.T) {
	res, err := CommandExecutor{}.Run(context.Background(), Command{
		Binary: "sh",
		Args:   []string{"-c", "exit 3"},
	})
	if err != nil {
		t.Fatalf("non-zero exit should not be an error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", res.ExitCode)
	}
}

func TestCommandExecutorSpawnFailure(t *testing.T) {
	_, err := CommandExecutor{}.Run(context.Background(), Command{Binary: "/nonexistent/binary"})
	if !errors.Is(err, ErrProcessSpawn) {
		t.Fatalf("expected ErrProcessSpawn, got %v", err)
	}
}
