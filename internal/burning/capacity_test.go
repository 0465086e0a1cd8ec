package burning

import (
	"context"
	"errors"
	"testing"
)

type durations map[string]float64

func (d durations) ProbeDuration(ctx context.Context, path string) (float64, error) {
	if seconds, ok := d[path]; ok {
		return seconds, nil
	}
	return 0, errors.New("no such file")
}

func TestCapacityConstants(t *testing.T) {
	if CD74MinSeconds != 4440 || CD80MinSeconds != 4800 {
		t.Fatalf("capacity seconds wrong: %d, %d", CD74MinSeconds, CD80MinSeconds)
	}
	if RedBookBytesPerSecond != 176400 {
		t.Fatalf("Red Book rate wrong: %d", RedBookBytesPerSecond)
	}
	if CD74MinBytes != 4440*176400 || CD80MinBytes != 4800*176400 {
		t.Fatalf("byte capacities wrong: %d, %d", CD74MinBytes, CD80MinBytes)
	}
	if DefaultGapSeconds != 2 || DefaultFadeInSeconds != 0 || DefaultFadeOutSeconds != 0 {
		t.Fatal("default gap/fade constants wrong")
	}
}

func TestAudioExtensions(t *testing.T) {
	for _, ext := range []string{".mp3", ".wav", ".flac", ".m4a", ".aac", ".ogg", ".wma", ".opus"} {
		if _, ok := AudioExtensions[ext]; !ok {
			t.Fatalf("missing extension %s", ext)
		}
	}
	if len(AudioExtensions) != 8 {
		t.Fatalf("expected 8 extensions, got %d", len(AudioExtensions))
	}
	if !IsAudioFile("/music/Song.MP3") {
		t.Fatal("extension matching should be case-insensitive")
	}
	if IsAudioFile("/music/cover.jpg") {
		t.Fatal("jpg is not audio")
	}
}

func TestComputeCapacityIncludesGaps(t *testing.T) {
	prober := durations{"a.mp3": 1000, "b.mp3": 1000, "c.mp3": 1000}
	report, err := ComputeCapacity(context.Background(), prober, []string{"a.mp3", "b.mp3", "c.mp3"}, 2, 80)
	if err != nil {
		t.Fatalf("ComputeCapacity: %v", err)
	}
	// 3000 s of audio plus two 2 s gaps.
	if report.TotalSeconds != 3004 {
		t.Fatalf("expected 3004 s, got %f", report.TotalSeconds)
	}
	if !report.Fits || report.Warning != "" {
		t.Fatalf("well under capacity should fit silently: %#v", report)
	}
}

func TestComputeCapacityOverflow(t *testing.T) {
	prober := durations{"long.flac": 5000}
	report, err := ComputeCapacity(context.Background(), prober, []string{"long.flac"}, 2, 80)
	if err != nil {
		t.Fatalf("ComputeCapacity: %v", err)
	}
	if report.Fits {
		t.Fatal("5000 s must not fit a 4800 s disc")
	}
	if report.Warning == "" {
		t.Fatal("overflow should carry a warning")
	}
}

func TestComputeCapacityNearFullWarnings(t *testing.T) {
	// 92% of a 74-minute disc.
	prober := durations{"a.wav": 4085}
	report, err := ComputeCapacity(context.Background(), prober, []string{"a.wav"}, 0, 74)
	if err != nil {
		t.Fatalf("ComputeCapacity: %v", err)
	}
	if !report.Fits || report.Warning == "" {
		t.Fatalf("92%% full should fit with a warning: %#v", report)
	}

	// 96% triggers the tighter warning.
	prober = durations{"b.wav": 4263}
	report, err = ComputeCapacity(context.Background(), prober, []string{"b.wav"}, 0, 74)
	if err != nil {
		t.Fatalf("ComputeCapacity: %v", err)
	}
	if !report.Fits || report.Warning == "" {
		t.Fatalf("96%% full should fit with a warning: %#v", report)
	}
}

func TestComputeCapacityProbeFailure(t *testing.T) {
	if _, err := ComputeCapacity(context.Background(), durations{}, []string{"ghost.mp3"}, 2, 80); err == nil {
		t.Fatal("expected probe failure to surface")
	}
}

func TestCapacitySeconds(t *testing.T) {
	if CapacitySeconds(74) != CD74MinSeconds {
		t.Fatal("74-minute capacity wrong")
	}
	if CapacitySeconds(80) != CD80MinSeconds {
		t.Fatal("80-minute capacity wrong")
	}
	if CapacitySeconds(0) != CD80MinSeconds {
		t.Fatal("unknown sizes should fall back to 80 minutes")
	}
}
