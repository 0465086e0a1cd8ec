// Package cdparanoia wraps the cdparanoia CLI for reading audio CD tracks.
package cdparanoia

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"singe/internal/services"
)

// trackPattern matches the per-track rows of the `cdparanoia -Q` table, e.g.
// `  1.    18295 [04:03.70]        0 [00:00.00]    no   no  2`.
var trackPattern = regexp.MustCompile(`^\s*(\d+)\.\s+\d+\s+\[([^\]]+)\]\s+\d+\s+\[([^\]]+)\]`)

// Track describes one audio track reported by the drive. Length and Offset
// keep cdparanoia's mm:ss.ff notation.
type Track struct {
	Number int
	Length string
	Offset string
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

// Client wraps cdparanoia CLI interactions.
type Client struct {
	binary string
	exec   services.Executor
}

// New constructs a cdparanoia client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("cdparanoia binary required")
	}
	client := &Client{binary: binary, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ListTracks queries the disc via `cdparanoia -Q` and returns the audio
// tracks sorted by number. cdparanoia prints its table on stderr.
func (c *Client) ListTracks(ctx context.Context, device string) ([]Track, error) {
	args := []string{"-Q"}
	if device != "" {
		args = append(args, "-d", device)
	}

	res, err := c.exec.Run(ctx, services.Command{Binary: c.binary, Args: args})
	if err != nil {
		return nil, services.Wrap(services.ErrProcessSpawn, "rip", "cdparanoia -Q", "", err)
	}
	if res.ExitCode != 0 {
		return nil, services.Wrap(services.ErrExternalTool, "rip", "cdparanoia -Q", services.Diagnostic(res), nil)
	}

	var tracks []Track
	for _, line := range strings.Split(res.Stderr, "\n") {
		match := trackPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		tracks = append(tracks, Track{Number: number, Length: match[2], Offset: match[3]})
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Number < tracks[j].Number })
	return tracks, nil
}

// RipTrack reads one track to a WAV file via `cdparanoia -w`.
func (c *Client) RipTrack(ctx context.Context, device string, number int, outPath string) error {
	if number <= 0 {
		return services.Wrap(services.ErrValidation, "rip", "cdparanoia -w", "track number must be positive", nil)
	}
	if outPath == "" {
		return services.Wrap(services.ErrValidation, "rip", "cdparanoia -w", "output path required", nil)
	}

	args := []string{"-w"}
	if device != "" {
		args = append(args, "-d", device)
	}
	args = append(args, strconv.Itoa(number), outPath)

	res, err := c.exec.Run(ctx, services.Command{Binary: c.binary, Args: args})
	if err != nil {
		return services.Wrap(services.ErrProcessSpawn, "rip", "cdparanoia -w", "", err)
	}
	if res.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "rip", "cdparanoia -w", services.Diagnostic(res), nil)
	}
	return nil
}
