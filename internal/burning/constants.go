package burning

import (
	"path/filepath"
	"strings"
)

// AudioExtensions are the source formats accepted for burning, lowercase
// with leading dot.
var AudioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
	".m4a":  {},
	".aac":  {},
	".ogg":  {},
	".wma":  {},
	".opus": {},
}

// IsAudioFile reports whether the path carries a recognized audio extension.
func IsAudioFile(path string) bool {
	_, ok := AudioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Red Book audio CD capacities and data rate.
const (
	// CD74MinSeconds and CD80MinSeconds are the audio capacities of the two
	// common CD-R sizes.
	CD74MinSeconds = 74 * 60
	CD80MinSeconds = 80 * 60

	// RedBookBytesPerSecond is the CD-DA data rate: 44100 Hz x 2 channels x
	// 2 bytes per sample.
	RedBookBytesPerSecond = 176400

	// CD74MinBytes and CD80MinBytes are the byte capacities derived from the
	// Red Book rate.
	CD74MinBytes = CD74MinSeconds * RedBookBytesPerSecond
	CD80MinBytes = CD80MinSeconds * RedBookBytesPerSecond

	// DefaultGapSeconds is the standard inter-track gap.
	DefaultGapSeconds = 2

	// DefaultFadeInSeconds and DefaultFadeOutSeconds disable fades unless a
	// job asks for them.
	DefaultFadeInSeconds  = 0
	DefaultFadeOutSeconds = 0
)

// CapacitySeconds maps a disc size in minutes (74 or 80) to its audio
// capacity in seconds. Unknown sizes fall back to the 80-minute capacity.
func CapacitySeconds(cdMinutes int) int {
	if cdMinutes == 74 {
		return CD74MinSeconds
	}
	return CD80MinSeconds
}
