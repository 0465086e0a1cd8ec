package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// Command describes one external process invocation.
type Command struct {
	Binary string
	Args   []string
	Dir    string
	// OnStdout, when set, receives each stdout line as it is produced in
	// addition to the captured transcript. Used for burner progress output.
	OnStdout func(line string)
}

// Result captures the observable outcome of a finished process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Executor abstracts command execution for testability. Run returns an error
// only when the process could not be launched (ErrProcessSpawn), its output
// could not be read, or the context was cancelled; a non-zero exit is
// reported through Result.ExitCode so callers can attach tool diagnostics.
type Executor interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// CommandExecutor runs commands with os/exec.
type CommandExecutor struct{}

func (CommandExecutor) Run(ctx context.Context, cmd Command) (Result, error) {
	proc := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec
	if cmd.Dir != "" {
		proc.Dir = cmd.Dir
	}

	stdout, err := proc.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := proc.StderrPipe()
	if err != nil {
		return Result{}, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := proc.Start(); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrProcessSpawn, cmd.Binary, err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once
	var outBuf, errBuf strings.Builder
	var mu sync.Mutex

	scan := func(r io.Reader, forward func(string)) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			forward(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() { scanErr = err })
		}
	}

	wg.Add(2)
	go scan(stdout, func(line string) {
		mu.Lock()
		outBuf.WriteString(line)
		outBuf.WriteByte('\n')
		mu.Unlock()
		if cmd.OnStdout != nil {
			cmd.OnStdout(line)
		}
	})
	go scan(stderr, func(line string) {
		mu.Lock()
		errBuf.WriteString(line)
		errBuf.WriteByte('\n')
		mu.Unlock()
	})

	wg.Wait()
	waitErr := proc.Wait()

	result := Result{Stdout: outBuf.String(), Stderr: errBuf.String()}

	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	if scanErr != nil {
		return result, fmt.Errorf("read command output: %w", scanErr)
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		return result, nil
	case errors.As(waitErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	default:
		return result, fmt.Errorf("wait for %s: %w", cmd.Binary, waitErr)
	}
}

// Diagnostic condenses a failed Result into a single human-readable line,
// preferring stderr since the burn tools report errors there.
func Diagnostic(res Result) string {
	text := strings.TrimSpace(res.Stderr)
	if text == "" {
		text = strings.TrimSpace(res.Stdout)
	}
	if text == "" {
		return fmt.Sprintf("exit code %d", res.ExitCode)
	}
	lines := strings.Split(text, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	return fmt.Sprintf("exit code %d: %s", res.ExitCode, last)
}
