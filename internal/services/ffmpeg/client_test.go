package ffmpeg

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

func TestProbeParsesDurationAndTags(t *testing.T) {
	exec := &fakeExecutor{result: services.Result{Stdout: `{
  "format": {
    "duration": "187.432000",
    "tags": {"title": "Song Title", "artist": "Artist", "album": "Album", "track": "3/12"}
  }
}`}}
	client, err := New("ffmpeg", "ffprobe", WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	info, err := client.Probe(context.Background(), "song.mp3")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.DurationSeconds != 187.432 {
		t.Fatalf("unexpected duration %v", info.DurationSeconds)
	}
	if info.Title != "Song Title" || info.Track != "3/12" {
		t.Fatalf("unexpected tags: %+v", info)
	}

	got := strings.Join(exec.commands[0].Args, " ")
	want := "-v quiet -print_format json -show_format song.mp3"
	if got != want {
		t.Fatalf("unexpected args %q", got)
	}
}

func TestProbeRejectsMalformedOutput(t *testing.T) {
	exec := &fakeExecutor{result: services.Result{Stdout: "not json"}}
	client, _ := New("ffmpeg", "ffprobe", WithExecutor(exec))

	if _, err := client.Probe(context.Background(), "song.mp3"); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestConvertToWAVBaseArguments(t *testing.T) {
	exec := &fakeExecutor{}
	client, _ := New("ffmpeg", "ffprobe", WithExecutor(exec))

	if err := client.ConvertToWAV(context.Background(), "in.mp3", "out.wav", ConvertOptions{}); err != nil {
		t.Fatalf("ConvertToWAV: %v", err)
	}
	got := strings.Join(exec.commands[0].Args, " ")
	// -y must precede the output file or ffmpeg ignores it.
	want := "-i in.mp3 -acodec pcm_s16le -ar 44100 -ac 2 -y out.wav"
	if got != want {
		t.Fatalf("unexpected args:\n got %q\nwant %q", got, want)
	}
}

func TestConvertToWAVFilterChain(t *testing.T) {
	exec := &fakeExecutor{}
	client, _ := New("ffmpeg", "ffprobe", WithExecutor(exec))

	opts := ConvertOptions{FadeInMS: 1500, FadeOutMS: 2000, GapMS: 2000, SourceDurationSeconds: 180}
	if err := client.ConvertToWAV(context.Background(), "in.flac", "out.wav", opts); err != nil {
		t.Fatalf("ConvertToWAV: %v", err)
	}

	args := exec.commands[0].Args
	var filter string
	for i, arg := range args {
		if arg == "-af" && i+1 < len(args) {
			filter = args[i+1]
		}
	}
	want := "afade=t=in:st=0:d=1.5,afade=t=out:st=178:d=2,apad=pad_dur=2"
	if filter != want {
		t.Fatalf("unexpected filter:\n got %q\nwant %q", filter, want)
	}
}

func TestConvertToWAVClampsFadeOutStart(t *testing.T) {
	if got := buildFilter(ConvertOptions{FadeOutMS: 5000, SourceDurationSeconds: 3}); !strings.Contains(got, "st=0:") {
		t.Fatalf("expected fade-out start clamped to zero, got %q", got)
	}
}

func TestConvertToWAVToolFailure(t *testing.T) {
	exec := &fakeExecutor{result: services.Result{ExitCode: 1, Stderr: "in.mp3: Invalid data found"}}
	client, _ := New("ffmpeg", "ffprobe", WithExecutor(exec))

	err := client.ConvertToWAV(context.Background(), "in.mp3", "out.wav", ConvertOptions{})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Fatalf("diagnostic missing: %v", err)
	}
}
