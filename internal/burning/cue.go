package burning

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CueTrack describes one entry of an exported CUE sheet. Empty Title and
// Performer fall back to defaults derived from the file name.
type CueTrack struct {
	File      string
	Title     string
	Performer string
}

// CueOptions controls the sheet header.
type CueOptions struct {
	AlbumTitle     string
	AlbumPerformer string
}

var titleCaser = cases.Title(language.English)

// WriteCueSheet renders a CUE sheet matching the layout players and rippers
// expect: album header, then FILE/TRACK/INDEX blocks per track.
func WriteCueSheet(w io.Writer, tracks []CueTrack, opts CueOptions) error {
	if len(tracks) == 0 {
		return fmt.Errorf("write cue sheet: no tracks")
	}

	album := opts.AlbumTitle
	if album == "" {
		album = "Audio CD"
	}
	performer := opts.AlbumPerformer
	if performer == "" {
		performer = "Various Artists"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TITLE %q\n", album)
	fmt.Fprintf(&b, "PERFORMER %q\n\n", performer)

	for i, track := range tracks {
		title := track.Title
		if title == "" {
			title = defaultTrackTitle(track.File)
		}
		artist := track.Performer
		if artist == "" {
			artist = "Unknown Artist"
		}

		fmt.Fprintf(&b, "FILE %q WAVE\n", filepath.Base(track.File))
		fmt.Fprintf(&b, "  TRACK %02d AUDIO\n", i+1)
		fmt.Fprintf(&b, "    TITLE %q\n", title)
		fmt.Fprintf(&b, "    PERFORMER %q\n", artist)
		b.WriteString("    INDEX 01 00:00:00\n\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCueSheetFile writes the CUE sheet to path.
func WriteCueSheetFile(path string, tracks []CueTrack, opts CueOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write cue sheet: %w", err)
	}
	if err := WriteCueSheet(f, tracks, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// defaultTrackTitle turns "03_my_song.mp3" into "My Song".
func defaultTrackTitle(file string) string {
	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	base = strings.TrimLeft(base, "0123456789 ")
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Unknown Track"
	}
	return titleCaser.String(base)
}
