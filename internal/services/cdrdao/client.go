// Package cdrdao wraps the cdrdao CLI for disc probing and TOC-based burns.
package cdrdao

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"singe/internal/services"
)

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

// Client wraps cdrdao CLI interactions.
type Client struct {
	binary string
	exec   services.Executor
}

// New constructs a cdrdao client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("cdrdao binary required")
	}
	client := &Client{binary: binary, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// DiscInfo probes the inserted medium. The raw transcript is returned even on
// a non-zero exit because cdrdao reports "no disc" conditions that way; only a
// spawn failure is an error.
func (c *Client) DiscInfo(ctx context.Context, device string) (services.Result, error) {
	if device == "" {
		return services.Result{}, services.Wrap(services.ErrValidation, "probe", "cdrdao disc-info", "device required", nil)
	}
	res, err := c.exec.Run(ctx, services.Command{
		Binary: c.binary,
		Args:   []string{"disc-info", "--device", device},
	})
	if err != nil {
		return res, services.Wrap(services.ErrProcessSpawn, "probe", "cdrdao disc-info", "", err)
	}
	return res, nil
}

// Write burns the TOC file to the device. Multi-session appends leave the
// disc open with --multi.
func (c *Client) Write(ctx context.Context, device string, speed int, tocPath string, eject, multiSession bool, onProgress func(line string)) error {
	if device == "" {
		return services.Wrap(services.ErrValidation, "burn", "cdrdao write", "device required", nil)
	}
	if tocPath == "" {
		return services.Wrap(services.ErrValidation, "burn", "cdrdao write", "toc file required", nil)
	}

	args := []string{"write", "--device", device}
	if speed > 0 {
		args = append(args, "--speed", strconv.Itoa(speed))
	}
	if multiSession {
		args = append(args, "--multi")
	}
	if eject {
		args = append(args, "--eject")
	}
	args = append(args, tocPath)

	res, err := c.exec.Run(ctx, services.Command{Binary: c.binary, Args: args, OnStdout: onProgress})
	if err != nil {
		return services.Wrap(services.ErrProcessSpawn, "burn", "cdrdao write", "", err)
	}
	if res.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "burn", "cdrdao write", services.Diagnostic(res), nil)
	}
	return nil
}
