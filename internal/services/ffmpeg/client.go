// Package ffmpeg wraps ffmpeg/ffprobe for track inspection and WAV staging.
package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"singe/internal/services"
)

// Info describes a probed audio file.
type Info struct {
	DurationSeconds float64
	Title           string
	Artist          string
	Album           string
	Track           string
}

// ConvertOptions controls the WAV staging filters. Durations are in
// milliseconds; zero disables the corresponding filter.
type ConvertOptions struct {
	FadeInMS  int
	FadeOutMS int
	GapMS     int
	// SourceDurationSeconds positions the fade-out; required when FadeOutMS > 0.
	SourceDurationSeconds float64
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps ffmpeg and ffprobe invocations.
type Client struct {
	ffmpegBin  string
	ffprobeBin string
	exec       services.Executor
}

// New constructs an ffmpeg client.
func New(ffmpegBin, ffprobeBin string, opts ...Option) (*Client, error) {
	ffmpegBin = strings.TrimSpace(ffmpegBin)
	ffprobeBin = strings.TrimSpace(ffprobeBin)
	if ffmpegBin == "" || ffprobeBin == "" {
		return nil, errors.New("ffmpeg and ffprobe binaries required")
	}
	client := &Client{ffmpegBin: ffmpegBin, ffprobeBin: ffprobeBin, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type probeFormat struct {
	Format struct {
		Duration string            `json:"duration"`
		Tags     map[string]string `json:"tags"`
	} `json:"format"`
}

// Probe reads duration and metadata tags from an audio file.
func (c *Client) Probe(ctx context.Context, path string) (Info, error) {
	res, err := c.exec.Run(ctx, services.Command{
		Binary: c.ffprobeBin,
		Args:   []string{"-v", "quiet", "-print_format", "json", "-show_format", path},
	})
	if err != nil {
		return Info{}, services.Wrap(services.ErrProcessSpawn, "probe", "ffprobe", path, err)
	}
	if res.ExitCode != 0 {
		return Info{}, services.Wrap(services.ErrExternalTool, "probe", "ffprobe", services.Diagnostic(res), nil)
	}

	var parsed probeFormat
	if err := json.Unmarshal([]byte(res.Stdout), &parsed); err != nil {
		return Info{}, services.Wrap(services.ErrExternalTool, "probe", "ffprobe", "unparseable output for "+path, err)
	}

	info := Info{
		Title:  parsed.Format.Tags["title"],
		Artist: parsed.Format.Tags["artist"],
		Album:  parsed.Format.Tags["album"],
		Track:  parsed.Format.Tags["track"],
	}
	if parsed.Format.Duration != "" {
		duration, err := strconv.ParseFloat(parsed.Format.Duration, 64)
		if err != nil {
			return Info{}, services.Wrap(services.ErrExternalTool, "probe", "ffprobe", "bad duration for "+path, err)
		}
		info.DurationSeconds = duration
	}
	return info, nil
}

// ProbeDuration returns the playback duration of an audio file in seconds.
func (c *Client) ProbeDuration(ctx context.Context, path string) (float64, error) {
	info, err := c.Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	return info.DurationSeconds, nil
}

// ConvertToWAV converts a source track to Red Book PCM (16-bit little-endian,
// 44.1 kHz, stereo), applying fades and the inter-track gap when requested.
func (c *Client) ConvertToWAV(ctx context.Context, inPath, outPath string, opts ConvertOptions) error {
	if inPath == "" || outPath == "" {
		return services.Wrap(services.ErrValidation, "convert", "ffmpeg", "input and output paths required", nil)
	}

	args := []string{"-i", inPath, "-acodec", "pcm_s16le", "-ar", "44100", "-ac", "2"}
	if filter := buildFilter(opts); filter != "" {
		args = append(args, "-af", filter)
	}
	args = append(args, "-y", outPath)

	res, err := c.exec.Run(ctx, services.Command{Binary: c.ffmpegBin, Args: args})
	if err != nil {
		return services.Wrap(services.ErrProcessSpawn, "convert", "ffmpeg", inPath, err)
	}
	if res.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "convert", "ffmpeg", services.Diagnostic(res), nil)
	}
	return nil
}

func buildFilter(opts ConvertOptions) string {
	var filters []string
	if opts.FadeInMS > 0 {
		filters = append(filters, fmt.Sprintf("afade=t=in:st=0:d=%s", formatSeconds(float64(opts.FadeInMS)/1000)))
	}
	if opts.FadeOutMS > 0 && opts.SourceDurationSeconds > 0 {
		fade := float64(opts.FadeOutMS) / 1000
		start := opts.SourceDurationSeconds - fade
		if start < 0 {
			start = 0
		}
		filters = append(filters, fmt.Sprintf("afade=t=out:st=%s:d=%s", formatSeconds(start), formatSeconds(fade)))
	}
	if opts.GapMS > 0 {
		filters = append(filters, fmt.Sprintf("apad=pad_dur=%s", formatSeconds(float64(opts.GapMS)/1000)))
	}
	return strings.Join(filters, ",")
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
