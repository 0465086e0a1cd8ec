// Package media locates and orders source audio files: folder scanning,
// M3U playlist parsing, and metadata-driven track ordering.
package media

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"singe/internal/burning"
)

// ScanFolder returns the audio files under dir, naturally sorted so that
// "2.mp3" precedes "10.mp3". With recursive false only the directory itself
// is examined.
func ScanFolder(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scan folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan folder: %s is not a directory", dir)
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() && burning.IsAudioFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && burning.IsAudioFile(entry.Name()) {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		return naturalLess(files[i], files[j])
	})
	return files, nil
}

var digitRuns = regexp.MustCompile(`\d+|\D+`)

// naturalLess compares paths treating digit runs as numbers, so track
// numbers sort in numeric order regardless of zero padding.
func naturalLess(a, b string) bool {
	aParts := digitRuns.FindAllString(strings.ToLower(a), -1)
	bParts := digitRuns.FindAllString(strings.ToLower(b), -1)

	for i := 0; i < len(aParts) && i < len(bParts); i++ {
		ap, bp := aParts[i], bParts[i]
		if ap == bp {
			continue
		}
		an, aIsNum := parseUint(ap)
		bn, bIsNum := parseUint(bp)
		switch {
		case aIsNum && bIsNum:
			if an != bn {
				return an < bn
			}
			// Equal values with different padding: fall back to text.
			return ap < bp
		case aIsNum:
			return true
		case bIsNum:
			return false
		default:
			return ap < bp
		}
	}
	return len(aParts) < len(bParts)
}

func parseUint(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	return n, err == nil
}
