package burning

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// TOCTrack describes one track in a cdrdao table of contents.
type TOCTrack struct {
	File      string
	Title     string // used only when CD-Text is enabled
	Performer string
}

// TOCOptions controls TOC generation.
type TOCOptions struct {
	CDText         bool
	AlbumTitle     string
	AlbumPerformer string
}

// WriteTOC renders a cdrdao CD_DA table of contents for the given tracks.
func WriteTOC(w io.Writer, tracks []TOCTrack, opts TOCOptions) error {
	if len(tracks) == 0 {
		return fmt.Errorf("write toc: no tracks")
	}

	var b strings.Builder
	b.WriteString("CD_DA\n\n")

	if opts.CDText {
		b.WriteString("CD_TEXT {\n")
		b.WriteString("  LANGUAGE_MAP { 0 : EN }\n")
		b.WriteString("  LANGUAGE 0 {\n")
		fmt.Fprintf(&b, "    TITLE %s\n", tocQuote(opts.AlbumTitle))
		fmt.Fprintf(&b, "    PERFORMER %s\n", tocQuote(opts.AlbumPerformer))
		b.WriteString("  }\n")
		b.WriteString("}\n\n")
	}

	for i, track := range tracks {
		fmt.Fprintf(&b, "// Track %d\n", i+1)
		b.WriteString("TRACK AUDIO\n")
		if opts.CDText {
			b.WriteString("CD_TEXT {\n")
			b.WriteString("  LANGUAGE 0 {\n")
			fmt.Fprintf(&b, "    TITLE %s\n", tocQuote(track.Title))
			fmt.Fprintf(&b, "    PERFORMER %s\n", tocQuote(track.Performer))
			b.WriteString("  }\n")
			b.WriteString("}\n")
		}
		fmt.Fprintf(&b, "FILE %s 0\n\n", tocQuote(track.File))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTOCFile writes the table of contents to path.
func WriteTOCFile(path string, tracks []TOCTrack, opts TOCOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write toc: %w", err)
	}
	if err := WriteTOC(f, tracks, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// tocQuote escapes a string for cdrdao TOC syntax.
func tocQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
