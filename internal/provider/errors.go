package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrPluginNotFound means the plugin executable is missing or not executable.
	ErrPluginNotFound = errors.New("plugin not found")
	// ErrPluginTimeout means the plugin did not finish within its deadline.
	ErrPluginTimeout = errors.New("plugin timed out")
	// ErrPluginNonZeroExit means the plugin exited with a failure code.
	ErrPluginNonZeroExit = errors.New("plugin exited with non-zero status")
	// ErrMalformedRecord marks a single unparseable list line. Never fatal.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrConfigMissing means no provider is selected or a required field is empty.
	ErrConfigMissing = errors.New("configuration missing")
	// ErrConfigInvalid means stored configuration or a plugin's declared
	// config could not be understood.
	ErrConfigInvalid = errors.New("configuration invalid")
)

// PluginError is returned by every protocol operation that fails because of
// the plugin process itself.
type PluginError struct {
	Plugin   string
	Op       string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *PluginError) Error() string {
	msg := fmt.Sprintf("provider %s %s: %v", e.Plugin, e.Op, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *PluginError) Unwrap() error { return e.Err }

// RecordError describes one skipped list line.
type RecordError struct {
	Line   int
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }

// IsConfigError reports whether err should route the user to configuration
// rather than be retried.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing) || errors.Is(err, ErrConfigInvalid)
}
