// Package help provides static contextual help topics for the CLI.
package help

import (
	"sort"
	"strings"
)

// Topic pairs a lookup key with its help text.
type Topic struct {
	Name  string
	Title string
	Text  string
}

var topics = map[string]Topic{
	"multi-session": {
		Name:  "multi-session",
		Title: "Multi-session discs",
		Text: `A multi-session disc keeps its table of contents open so more data can
be appended later. Singe only appends to discs holding a DATA session, and
only when a job explicitly enables multi_session. Audio sessions are never
appended: CD players read the first session only, so an appended audio
session would be invisible. For maximum player compatibility burn audio
discs in a single closed session.`,
	},
	"verification": {
		Name:  "verification",
		Title: "Checksum verification",
		Text: `With verify enabled, singe records a digest (md5, sha1, or sha256) of
every source file and of every staged track before burning, then recomputes
the staged digests after the burn. Any mismatch fails the job even when the
drive reported success, because a silently corrupt disc is worse than a
failed one. The source digests are kept with the completed job for later
reference.`,
	},
	"fades": {
		Name:  "fades",
		Title: "Fade-in and fade-out",
		Text: `fade_in_ms and fade_out_ms apply a volume ramp at the start and end of
each track while staging it as WAV. The defaults are 0 (no fade). Fades are
useful for live recordings or DJ mixes where hard cuts sound abrupt; for
studio albums leave them off, since the tracks are already mastered.`,
	},
	"track-gaps": {
		Name:  "track-gaps",
		Title: "Gaps between tracks",
		Text: `gap_seconds adds silence after each track (default 2 seconds, the Red
Book standard pregap). Set it to 0 for gapless albums such as live sets or
concept records. The gap counts against disc capacity: twenty tracks with
two-second gaps consume 38 extra seconds.`,
	},
	"cd-text": {
		Name:  "cd-text",
		Title: "CD-Text",
		Text: `CD-Text embeds album and track titles on the disc itself so supporting
players can display them. Singe writes CD-Text through cdrdao when a job
enables cd_text. Many car and home players ignore CD-Text; it never hurts
playback, it is just not always shown.`,
	},
	"folder-scanning": {
		Name:  "folder-scanning",
		Title: "Folder scanning",
		Text: `singe scan walks a folder (recursively by default) and collects files
with recognized audio extensions: .mp3 .wav .flac .m4a .aac .ogg .wma
.opus. Files sort naturally, so track2 comes before track10. Use the result
as a job's track list, or reorder it first with metadata track numbers.`,
	},
	"playlist": {
		Name:  "playlist",
		Title: "M3U playlists",
		Text: `singe playlist reads .m3u and .m3u8 files and keeps their order, which
makes playlists the easiest way to burn a curated mix. Comment lines
starting with # are skipped, relative paths resolve against the playlist's
folder, and entries that are missing or not audio are reported and dropped.
Legacy playlists in Latin-1 or Windows-1252 encodings are handled.`,
	},
	"preview": {
		Name:  "preview",
		Title: "Previewing tracks",
		Text: `Before committing a disc, play the first seconds of each track with any
local player to catch wrong files and bad rips. Burning is not reversible
on CD-R media, so a two-minute listen is cheaper than a coaster. Singe
itself does not play audio; use ffplay or your player of choice on the
job's file list.`,
	},
	"normalize": {
		Name:  "normalize",
		Title: "Volume normalization",
		Text: `Normalization (sox norm) scales each track so its peak hits full scale,
evening out discs assembled from different albums. It does not compress
dynamics, it only shifts overall level. If sox fails or is missing the
original audio is burned unchanged. Disable normalize for albums mastered
as a whole, where relative levels are intentional.`,
	},
	"track-order": {
		Name:  "track-order",
		Title: "Track ordering",
		Text: `Tracks burn in the job's declared order. singe scan orders naturally by
file name; the metadata ordering mode reads each file's track tag via
ffprobe instead, understanding "3" and "3/12" forms. Files without a usable
tag go to the end in their original order. Check the printed order before
burning: the disc's track list is permanent.`,
	},
	"burn-speed": {
		Name:  "burn-speed",
		Title: "Burn speed",
		Text: `Lower speeds generally produce discs that older players read more
reliably; 8x is a good default for audio CD-Rs. Speed 0 lets the drive
choose its maximum. If a burned disc skips in a car player, retry the burn
at 4x or 8x before blaming the media.`,
	},
	"cd-media": {
		Name:  "cd-media",
		Title: "CD media types",
		Text: `Use CD-R for audio: it is cheap and plays in nearly everything. CD-RW is
rewritable but many older players cannot read it. "Audio" or "Music" CD-Rs
are the same media with a royalty flag, needed only by standalone audio
recorders. 74-minute discs hold 650 MB of audio, 80-minute discs 700 MB;
singe targets the size set in cd_minutes.`,
	},
	"format-export": {
		Name:  "format-export",
		Title: "CUE and TOC export",
		Text: `singe cue writes a CUE sheet for a track list: album header plus a
FILE/TRACK/INDEX block per track, usable by players and rippers. The
burner itself uses a cdrdao TOC (CD_DA with TRACK AUDIO entries) generated
at burn time; the TOC is an internal format and is regenerated per burn.`,
	},
	"album-art": {
		Name:  "album-art",
		Title: "Album art",
		Text: `Audio CDs have no standard slot for images; embedded cover art in the
source files is simply not burned. If you want art with a disc, print a
jewel-case insert. Cover image files (jpg, png) in scanned folders are
ignored rather than treated as tracks.`,
	},
	"batch-burn": {
		Name:  "batch-burn",
		Title: "Batch burning",
		Text: `Queue several jobs with singe queue add, then singe burn run processes
them in order. Jobs for the same drive serialize; with several drives
configured, jobs for different drives burn at the same time. Between jobs
on one drive singe waits for you to swap in a blank disc. A failed job is
recorded and the batch moves on; nothing is retried automatically.`,
	},
}

// Lookup returns the topic for name. Matching is case-insensitive and
// tolerates underscores and spaces in place of hyphens.
func Lookup(name string) (Topic, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	topic, ok := topics[key]
	return topic, ok
}

// Topics returns all topic names sorted alphabetically.
func Topics() []string {
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
