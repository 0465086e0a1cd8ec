package cdrdao

import (
	"context"
	"errors"
	"strings"
	"testing"

	"singe/internal/services"
)

type fakeExecutor struct {
	commands []services.Command
	result   services.Result
	err      error
}

func (f *fakeExecutor) Run(_ context.Context, cmd services.Command) (services.Result, error) {
	f.commands = append(f.commands, cmd)
	return f.result, f.err
}

func TestDiscInfoReturnsTranscriptOnNonZeroExit(t *testing.T) {
	exec := &fakeExecutor{result: services.Result{ExitCode: 1, Stderr: "Unit not ready, giving up."}}
	client, err := New("cdrdao", WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := client.DiscInfo(context.Background(), "/dev/sr0")
	if err != nil {
		t.Fatalf("DiscInfo should tolerate non-zero exit: %v", err)
	}
	if !strings.Contains(res.Stderr, "Unit not ready") {
		t.Fatalf("transcript lost: %+v", res)
	}
	got := strings.Join(exec.commands[0].Args, " ")
	if got != "disc-info --device /dev/sr0" {
		t.Fatalf("unexpected args %q", got)
	}
}

func TestDiscInfoSpawnFailure(t *testing.T) {
	exec := &fakeExecutor{err: services.ErrProcessSpawn}
	client, _ := New("cdrdao", WithExecutor(exec))

	if _, err := client.DiscInfo(context.Background(), "/dev/sr0"); !errors.Is(err, services.ErrProcessSpawn) {
		t.Fatalf("expected spawn error, got %v", err)
	}
}

func TestWriteArgumentOrder(t *testing.T) {
	exec := &fakeExecutor{}
	client, _ := New("cdrdao", WithExecutor(exec))

	err := client.Write(context.Background(), "/dev/sr0", 8, "/tmp/audio.toc", true, false, nil)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := strings.Join(exec.commands[0].Args, " ")
	want := "write --device /dev/sr0 --speed 8 --eject /tmp/audio.toc"
	if got != want {
		t.Fatalf("unexpected args:\n got %q\nwant %q", got, want)
	}
}

func TestWriteMultiSessionAddsMulti(t *testing.T) {
	exec := &fakeExecutor{}
	client, _ := New("cdrdao", WithExecutor(exec))

	if err := client.Write(context.Background(), "/dev/sr0", 0, "audio.toc", false, true, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := strings.Join(exec.commands[0].Args, " ")
	want := "write --device /dev/sr0 --multi audio.toc"
	if got != want {
		t.Fatalf("unexpected args %q", got)
	}
}

func TestWriteFailureCarriesDiagnostic(t *testing.T) {
	exec := &fakeExecutor{result: services.Result{ExitCode: 1, Stderr: "ERROR: Writing failed."}}
	client, _ := New("cdrdao", WithExecutor(exec))

	err := client.Write(context.Background(), "/dev/sr0", 8, "audio.toc", false, false, nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !strings.Contains(err.Error(), "Writing failed") {
		t.Fatalf("diagnostic missing: %v", err)
	}
}
