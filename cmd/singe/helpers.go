package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"singe/internal/burning"
	"singe/internal/config"
	"singe/internal/logging"
)

func newRunLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.NewFromConfig(cfg)
}

// newProgressRenderer returns an inline progress callback when the writer is
// an interactive terminal, nil otherwise. Non-interactive runs rely on the
// structured log instead of carriage-return redraws.
func newProgressRenderer(w io.Writer) burning.ProgressFunc {
	file, ok := w.(*os.File)
	if !ok || !isTerminal(file.Fd()) {
		return nil
	}
	return func(current, total int, suffix string) {
		fmt.Fprintf(w, "\r\x1b[K[%d/%d] %s", current, total, suffix)
		if current >= total {
			fmt.Fprintln(w)
		}
	}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
