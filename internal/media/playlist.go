package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"singe/internal/burning"
)

// PlaylistResult carries the usable entries of a playlist plus what was
// dropped, so the CLI can warn without the parser printing.
type PlaylistResult struct {
	Files    []string // resolved audio paths in playlist order
	NonAudio []string // existing entries without a recognized extension
	Missing  []string // entries that do not exist on disk
}

// ParsePlaylist reads an .m3u/.m3u8 file and resolves its audio entries.
// Comments (#...) and blank lines are skipped; relative entries resolve
// against the playlist's directory. The bytes are decoded as UTF-8 when
// valid, then Latin-1, then Windows-1252, mirroring how players tolerate
// legacy playlists.
func ParsePlaylist(path string) (PlaylistResult, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".m3u" && ext != ".m3u8" {
		return PlaylistResult{}, fmt.Errorf("parse playlist: %s is not an M3U/M3U8 file", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return PlaylistResult{}, fmt.Errorf("parse playlist: %w", err)
	}

	content, err := decodePlaylist(raw)
	if err != nil {
		return PlaylistResult{}, fmt.Errorf("parse playlist: %w", err)
	}

	baseDir := filepath.Dir(path)
	var result PlaylistResult
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := line
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(baseDir, entry)
		}
		entry = filepath.Clean(entry)

		switch {
		case !fileExists(entry):
			result.Missing = append(result.Missing, entry)
		case !burning.IsAudioFile(entry):
			result.NonAudio = append(result.NonAudio, entry)
		default:
			result.Files = append(result.Files, entry)
		}
	}
	return result, nil
}

func decodePlaylist(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, err := cm.NewDecoder().Bytes(raw)
		if err == nil {
			return string(decoded), nil
		}
	}
	return "", fmt.Errorf("could not decode playlist bytes")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
