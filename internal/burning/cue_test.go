package burning

import (
	"strings"
	"testing"
)

func TestWriteCueSheetDefaults(t *testing.T) {
	var b strings.Builder
	tracks := []CueTrack{
		{File: "/music/01_first_song.mp3"},
		{File: "/music/second.flac"},
	}
	if err := WriteCueSheet(&b, tracks, CueOptions{}); err != nil {
		t.Fatalf("WriteCueSheet: %v", err)
	}
	out := b.String()

	if !strings.HasPrefix(out, "TITLE \"Audio CD\"\nPERFORMER \"Various Artists\"\n") {
		t.Fatalf("missing default header:\n%s", out)
	}
	if !strings.Contains(out, `FILE "01_first_song.mp3" WAVE`) {
		t.Fatalf("FILE entries use base names:\n%s", out)
	}
	if !strings.Contains(out, "  TRACK 01 AUDIO\n") || !strings.Contains(out, "  TRACK 02 AUDIO\n") {
		t.Fatalf("missing numbered TRACK entries:\n%s", out)
	}
	if !strings.Contains(out, `TITLE "First Song"`) {
		t.Fatalf("default titles should be title-cased from the file name:\n%s", out)
	}
	if !strings.Contains(out, "    INDEX 01 00:00:00\n") {
		t.Fatalf("missing INDEX entries:\n%s", out)
	}
}

func TestWriteCueSheetUsesMetadata(t *testing.T) {
	var b strings.Builder
	tracks := []CueTrack{
		{File: "a.wav", Title: "Night Drive", Performer: "Neon"},
	}
	opts := CueOptions{AlbumTitle: "City Lights", AlbumPerformer: "Neon"}
	if err := WriteCueSheet(&b, tracks, opts); err != nil {
		t.Fatalf("WriteCueSheet: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, `TITLE "City Lights"`) || !strings.Contains(out, `TITLE "Night Drive"`) {
		t.Fatalf("metadata not used:\n%s", out)
	}
	if !strings.Contains(out, `PERFORMER "Neon"`) {
		t.Fatalf("performer not used:\n%s", out)
	}
}

func TestWriteCueSheetRejectsEmpty(t *testing.T) {
	var b strings.Builder
	if err := WriteCueSheet(&b, nil, CueOptions{}); err == nil {
		t.Fatal("expected error for empty track list")
	}
}

func TestDefaultTrackTitle(t *testing.T) {
	cases := map[string]string{
		"/music/03_my_song.mp3": "My Song",
		"just-a-name.flac":      "Just A Name",
		"01.wav":                "Unknown Track",
	}
	for file, want := range cases {
		if got := defaultTrackTitle(file); got != want {
			t.Fatalf("defaultTrackTitle(%q) = %q, want %q", file, got, want)
		}
	}
}
