package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
)

// waitDelay bounds how long Wait may block on pipes held open by background
// helpers a command left behind after exiting.
const waitDelay = 2 * time.Second

// ExecOptions configures command execution.
type ExecOptions struct {
	// Dir is the working directory for the command.
	Dir string

	// Timeout is the maximum execution time. Zero means no timeout.
	Timeout time.Duration

	// Env entries ("KEY=value") appended to the parent environment.
	Env []string
}

// Result contains the result of a command execution.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
	TimedOut bool
	// Started is false when the process could not be launched at all.
	Started bool
}

// ExecError describes a command that did not exit cleanly.
type ExecError struct {
	Command  string
	ExitCode int
	TimedOut bool
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	switch {
	case e.TimedOut:
		return fmt.Sprintf("%s: timed out", e.Command)
	case e.ExitCode > 0:
		msg := fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
		if s := strings.TrimSpace(e.Stderr); s != "" {
			msg += ": " + firstLine(s)
		}
		return msg
	default:
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
}

func (e *ExecError) Unwrap() error { return e.Err }

// ErrTimeout is matched by errors.Is for commands that hit their deadline.
var ErrTimeout = errors.New("command timed out")

// Is lets errors.Is(err, ErrTimeout) match timed out commands.
func (e *ExecError) Is(target error) bool {
	return target == ErrTimeout && e.TimedOut
}

// Run executes cmdParts[0] with the remaining arguments in its own process
// group. stdout and stderr are captured separately. On timeout or
// cancellation the whole group is killed, so grandchildren do not outlive
// the deadline. A command that exits 0 but leaves a background process
// holding its output open succeeds with what it wrote before exiting.
// A non-nil error is always an *ExecError; the Result is returned in both
// cases.
func Run(ctx context.Context, opts ExecOptions, cmdParts []string) (*Result, error) {
	if len(cmdParts) == 0 {
		return &Result{}, &ExecError{Command: "<empty command>", ExitCode: -1, Err: errors.New("empty command")}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, cmdParts[0], cmdParts[1:]...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		result.Started = true
		result.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err == nil {
		return result, nil
	}
	if errors.Is(err, exec.ErrWaitDelay) && result.ExitCode == 0 && ctx.Err() == nil {
		return result, nil
	}

	execErr := &ExecError{
		Command:  FormatCommand(cmdParts),
		ExitCode: result.ExitCode,
		Stderr:   stderr.String(),
		Err:      err,
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		execErr.TimedOut = true
	}
	return result, execErr
}

// Output runs the command and returns trimmed stdout.
func Output(ctx context.Context, dir string, timeout time.Duration, cmdParts ...string) (string, error) {
	res, err := Run(ctx, ExecOptions{Dir: dir, Timeout: timeout}, cmdParts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

// FormatCommand formats command parts into a readable string for logging.
// Example: ["git", "commit", "-m", "my message"] -> "git commit -m 'my message'"
func FormatCommand(cmdParts []string) string {
	if len(cmdParts) == 0 {
		return "<empty command>"
	}
	return shellquote.Join(cmdParts...)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
