package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrExternalTool, "burn", "cdrdao write", "device busy", errors.New("exit 1"))
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	want := "external tool error: burn: cdrdao write: device busy: exit 1"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
	if err.Error() != "transient failure: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestIsStructural(t *testing.T) {
	if !IsStructural(Wrap(ErrValidation, "queue", "start", "bad state", nil)) {
		t.Fatal("validation errors are structural")
	}
	if IsStructural(Wrap(ErrExternalTool, "burn", "wodim", "boom", nil)) {
		t.Fatal("tool errors are not structural")
	}
}

func TestDiagnosticPrefersStderr(t *testing.T) {
	res := Result{ExitCode: 2, Stdout: "progress 50%", Stderr: "first\ncdrdao: device not ready"}
	got := Diagnostic(res)
	want := "exit code 2: cdrdao: device not ready"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	empty := Diagnostic(Result{ExitCode: 3})
	if empty != "exit code 3" {
		t.Fatalf("got %q", empty)
	}
}
