package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode"
)

// DefaultTimeout bounds a single external command when no timeout is configured
const DefaultTimeout = 5 * time.Second

// ErrEmptyOutput is recorded when a command ran but printed nothing
var ErrEmptyOutput = errors.New("empty output")

// CommandError records a failed command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Runner is the boundary between the probes and the host. Probes never see
// exit codes: Text collapses failure into "", Optional reports absence.
type Runner interface {
	// Text returns the command's stdout with trailing whitespace removed,
	// or "" if it could not be run.
	Text(ctx context.Context, name string, args ...string) string

	// Optional returns the command's stdout and true only when the command
	// exited successfully and printed something.
	Optional(ctx context.Context, name string, args ...string) (string, bool)

	// ReadFile returns the file's content with trailing whitespace removed,
	// or "" if it could not be read.
	ReadFile(path string) string

	// LookupEnv mirrors os.LookupEnv.
	LookupEnv(key string) (string, bool)
}

// Exec runs real commands on the local host.
type Exec struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

// New returns an Exec runner with the given per-command timeout
func New(timeout time.Duration, logger *slog.Logger) *Exec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exec{Timeout: timeout, Logger: logger}
}

// Run executes name with args and returns trimmed stdout. A non-zero exit,
// a missing binary, or a timeout is returned as a *CommandError.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (string, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(timeoutCtx, name, args...).Output()
	text := trimEnd(string(out))
	if err != nil {
		return text, &CommandError{Command: name, Err: err}
	}
	return text, nil
}

func (e *Exec) Text(ctx context.Context, name string, args ...string) string {
	out, err := e.Run(ctx, name, args...)
	if err != nil {
		e.logger().Debug("command failed", "command", name, "args", args, "err", err)
		// uname/cat style probes treat failure and silence alike, but a
		// non-zero exit may still have printed something useful
		var cmdErr *CommandError
		var exitErr *exec.ExitError
		if errors.As(err, &cmdErr) && errors.As(cmdErr.Err, &exitErr) {
			return out
		}
		return ""
	}
	return out
}

func (e *Exec) Optional(ctx context.Context, name string, args ...string) (string, bool) {
	out, err := e.Run(ctx, name, args...)
	if err != nil {
		e.logger().Debug("optional command unavailable", "command", name, "args", args, "err", err)
		return "", false
	}
	if out == "" {
		e.logger().Debug("optional command unavailable", "command", name, "args", args, "err", ErrEmptyOutput)
		return "", false
	}
	return out, true
}

func (e *Exec) ReadFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		e.logger().Debug("read failed", "path", path, "err", err)
		return ""
	}
	return trimEnd(string(data))
}

func (e *Exec) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (e *Exec) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func trimEnd(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
