// Package sox wraps the sox CLI for peak normalization of staged WAV tracks.
package sox

import (
	"context"
	"errors"
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

// Client wraps sox CLI interactions.
type Client struct {
	binary string
	exec   services.Executor
}

// New constructs a sox client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("sox binary required")
	}
	client := &Client{binary: binary, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Normalize applies peak normalization. Callers fall back to the original
// file on failure; normalization is best effort and never aborts a burn.
func (c *Client) Normalize(ctx context.Context, inPath, outPath string) error {
	if inPath == "" || outPath == "" {
		return services.Wrap(services.ErrValidation, "normalize", "sox", "input and output paths required", nil)
	}
	res, err := c.exec.Run(ctx, services.Command{
		Binary: c.binary,
		Args:   []string{inPath, outPath, "norm"},
	})
	if err != nil {
		return services.Wrap(services.ErrProcessSpawn, "normalize", "sox", "", err)
	}
	if res.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "normalize", "sox", services.Diagnostic(res), nil)
	}
	return nil
}
