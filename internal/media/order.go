package media

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"singe/internal/services/ffmpeg"
)

// unnumberedTrack sorts files without a usable track tag after everything
// else while preserving their relative order.
const unnumberedTrack = 999

// TagProber reads tags from an audio file; satisfied by the ffmpeg client.
type TagProber interface {
	Probe(ctx context.Context, path string) (ffmpeg.Info, error)
}

// TrackInfo pairs a file with its probed metadata and resolved track number.
type TrackInfo struct {
	Path        string
	TrackNumber int // unnumberedTrack when the tag is absent or unparseable
	Info        ffmpeg.Info
}

// OrganizeByTrackNumber orders files by their metadata track tag. Tags of
// the form "3/12" use the part before the slash. Files whose tags are
// missing or malformed go to the tail in their original order; a probe
// failure is treated the same way rather than aborting the ordering.
func OrganizeByTrackNumber(ctx context.Context, prober TagProber, files []string) ([]TrackInfo, error) {
	tracks := make([]TrackInfo, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := prober.Probe(ctx, file)
		if err != nil {
			tracks = append(tracks, TrackInfo{Path: file, TrackNumber: unnumberedTrack})
			continue
		}
		tracks = append(tracks, TrackInfo{
			Path:        file,
			TrackNumber: parseTrackNumber(info.Track),
			Info:        info,
		})
	}

	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].TrackNumber < tracks[j].TrackNumber
	})
	return tracks, nil
}

// Paths extracts the ordered file list from track infos.
func Paths(tracks []TrackInfo) []string {
	paths := make([]string, len(tracks))
	for i, track := range tracks {
		paths[i] = track.Path
	}
	return paths
}

func parseTrackNumber(tag string) int {
	tag = strings.TrimSpace(tag)
	if before, _, found := strings.Cut(tag, "/"); found {
		tag = strings.TrimSpace(before)
	}
	n, err := strconv.Atoi(tag)
	if err != nil || n <= 0 {
		return unnumberedTrack
	}
	return n
}
