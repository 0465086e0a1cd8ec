// Package wodim wraps the wodim CLI for device discovery and fallback burns.
package wodim

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"singe/internal/services"
)

// DefaultDevice is assumed when wodim reports no writer, matching the common
// Linux optical drive node.
const DefaultDevice = "/dev/sr0"

var devicePattern = regexp.MustCompile(`/dev/[^\s'"]+`)

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

// Client wraps wodim CLI interactions.
type Client struct {
	binary string
	exec   services.Executor
}

// New constructs a wodim client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("wodim binary required")
	}
	client := &Client{binary: binary, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// DetectDevice scans `wodim --devices` output for the first writer node.
// When the probe runs but lists no device, DefaultDevice is returned; a probe
// that cannot be launched surfaces as an error so the caller can distinguish
// a missing tool from an empty bus.
func (c *Client) DetectDevice(ctx context.Context) (string, error) {
	res, err := c.exec.Run(ctx, services.Command{Binary: c.binary, Args: []string{"--devices"}})
	if err != nil {
		return "", services.Wrap(services.ErrProcessSpawn, "device-detect", "wodim --devices", "", err)
	}

	// wodim prints the device table on stderr.
	for _, line := range strings.Split(res.Stderr+"\n"+res.Stdout, "\n") {
		if !strings.Contains(line, "/dev/") {
			continue
		}
		if match := devicePattern.FindString(line); match != "" {
			return match, nil
		}
	}
	return DefaultDevice, nil
}

// Burn writes the prepared WAV tracks as an audio session. Used as the
// fallback path when cdrdao is unavailable.
func (c *Client) Burn(ctx context.Context, device string, speed int, wavFiles []string, eject bool) error {
	if device == "" {
		return services.Wrap(services.ErrValidation, "burn", "wodim", "device required", nil)
	}
	if len(wavFiles) == 0 {
		return services.Wrap(services.ErrValidation, "burn", "wodim", "no tracks to burn", nil)
	}

	args := []string{fmt.Sprintf("dev=%s", device), "-v", "-audio", "-pad"}
	if speed > 0 {
		args = append(args, "speed="+strconv.Itoa(speed))
	}
	if eject {
		args = append(args, "-eject")
	}
	args = append(args, wavFiles...)

	res, err := c.exec.Run(ctx, services.Command{Binary: c.binary, Args: args})
	if err != nil {
		return services.Wrap(services.ErrProcessSpawn, "burn", "wodim", "", err)
	}
	if res.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "burn", "wodim", services.Diagnostic(res), nil)
	}
	return nil
}
