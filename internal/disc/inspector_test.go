package disc

import (
	"context"
	"errors"
	"testing"

	"singe/internal/logging"
	"singe/internal/services"
)

type fakeProbe struct {
	result services.Result
	err    error
	calls  int
}

func (f *fakeProbe) DiscInfo(ctx context.Context, device string) (services.Result, error) {
	f.calls++
	return f.result, f.err
}

func TestCheckStatusNoDisc(t *testing.T) {
	probe := &fakeProbe{result: services.Result{ExitCode: 1, Stderr: "ERROR: Unit not ready, giving up."}}
	inspector := NewInspector(probe, logging.NewNop())

	status, err := inspector.CheckStatus(context.Background(), "/dev/sr0")
	if err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	if status != StatusNoDisc {
		t.Fatalf("expected no-disc, got %s", status)
	}
}

func TestCheckStatusBlank(t *testing.T) {
	transcript := "Device: /dev/sr0\nCD-RW                : no\nCD-R medium          : Ritek Co.\nCD-R empty           : yes\n"
	probe := &fakeProbe{result: services.Result{Stdout: transcript}}
	inspector := NewInspector(probe, logging.NewNop())

	status, err := inspector.CheckStatus(context.Background(), "/dev/sr0")
	if err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	if status != StatusBlank {
		t.Fatalf("expected blank, got %s", status)
	}
}

func TestCheckStatusSpawnFailureIsUnknownNotNoDisc(t *testing.T) {
	probe := &fakeProbe{err: services.Wrap(services.ErrProcessSpawn, "probe", "cdrdao disc-info", "", errors.New("executable not found"))}
	inspector := NewInspector(probe, logging.NewNop())

	status, err := inspector.CheckStatus(context.Background(), "/dev/sr0")
	if err == nil {
		t.Fatal("expected error from failed probe spawn")
	}
	if status != StatusUnknown {
		t.Fatalf("expected unknown, got %s", status)
	}
}

func TestCheckStatusQueriesFreshEveryCall(t *testing.T) {
	probe := &fakeProbe{result: services.Result{Stdout: "CD-R empty : yes"}}
	inspector := NewInspector(probe, logging.NewNop())

	ctx := context.Background()
	if _, err := inspector.CheckStatus(ctx, "/dev/sr0"); err != nil {
		t.Fatalf("first probe: %v", err)
	}
	if _, err := inspector.CheckStatus(ctx, "/dev/sr0"); err != nil {
		t.Fatalf("second probe: %v", err)
	}
	if probe.calls != 2 {
		t.Fatalf("expected 2 probe invocations, got %d", probe.calls)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		transcript string
		want       Status
	}{
		{"empty tray", "No disk.", StatusNoDisc},
		{"not ready", "Unit not ready", StatusNoDisc},
		{"blank field", "CD-R empty           : yes", StatusBlank},
		{"blank prose", "Disk is blank", StatusBlank},
		{"audio session", "Session type: CD-DA", StatusAudio},
		{"data session", "Session type: CD-ROM", StatusData},
		{"recorded cdr", "CD-R empty           : no", StatusData},
		{"garbage", "flux capacitor engaged", StatusUnknown},
		{"empty output", "", StatusUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.transcript); got != tc.want {
				t.Fatalf("Classify(%q) = %s, want %s", tc.transcript, got, tc.want)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusNoDisc:  "no-disc",
		StatusBlank:   "blank",
		StatusData:    "data",
		StatusAudio:   "audio",
		StatusUnknown: "unknown",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Fatalf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	if !StatusBlank.Writable() {
		t.Fatal("blank disc should be writable")
	}
	if StatusData.Writable() || StatusUnknown.Writable() {
		t.Fatal("only blank discs are writable")
	}
	if StatusNoDisc.HasMedium() || StatusUnknown.HasMedium() {
		t.Fatal("no-disc and unknown must not report a medium")
	}
	if !StatusAudio.HasMedium() {
		t.Fatal("audio disc should report a medium")
	}
}
