// Package watcher turns an fswatch subprocess into an edge-triggered change
// channel. Each line fswatch prints is one batch of changes.
package watcher

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
	"watchdash/internal/utils"
	"watchdash/pkg/logging"
)

const subsystem = "Watcher"

// ErrNoChangeSource means change notification is unavailable and callers
// should rely on polling alone.
var ErrNoChangeSource = errors.New("no change notification source")

// DefaultStopGrace is how long Stop waits after SIGTERM before killing.
const DefaultStopGrace = 2 * time.Second

// Options configures Start.
type Options struct {
	Binary    string
	Latency   float64
	Paths     []string
	StopGrace time.Duration
	Log       *logging.Logger
}

// Watcher owns one fswatch process.
type Watcher struct {
	cmd     *exec.Cmd
	events  chan struct{}
	exited  chan struct{}
	stopped atomic.Bool
	grace   time.Duration
	log     *logging.Logger

	stopOnce sync.Once
}

// ExistingPaths filters candidates down to the paths present on disk.
func ExistingPaths(candidates ...string) []string {
	var out []string
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// Start launches the watcher. It returns an error wrapping ErrNoChangeSource
// when the binary is missing, no path is given, or the process fails to
// start.
func Start(opts Options) (*Watcher, error) {
	if len(opts.Paths) == 0 {
		return nil, fmt.Errorf("%w: nothing to watch", ErrNoChangeSource)
	}
	bin := opts.Binary
	if bin == "" {
		bin = "fswatch"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoChangeSource, err)
	}
	if opts.Latency <= 0 {
		opts.Latency = 1
	}
	if opts.StopGrace <= 0 {
		opts.StopGrace = DefaultStopGrace
	}

	args := append([]string{"--latency", strconv.FormatFloat(opts.Latency, 'f', -1, 64), "--one-per-batch"}, opts.Paths...)
	cmd := exec.Command(path, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoChangeSource, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoChangeSource, err)
	}
	opts.Log.Info(subsystem, "watching %d paths: %s", len(opts.Paths), utils.FormatCommand(append([]string{path}, args...)))

	w := &Watcher{
		cmd:    cmd,
		events: make(chan struct{}, 1),
		exited: make(chan struct{}),
		grace:  opts.StopGrace,
		log:    opts.Log,
	}
	go w.read(bufio.NewScanner(stdout))
	return w, nil
}

// Events delivers at most one pending notification; bursts collapse into
// one. The channel is closed when the process exits.
func (w *Watcher) Events() <-chan struct{} { return w.events }

func (w *Watcher) read(scanner *bufio.Scanner) {
	defer close(w.exited)
	defer close(w.events)

	for scanner.Scan() {
		if w.stopped.Load() {
			break
		}
		select {
		case w.events <- struct{}{}:
		default:
		}
	}
	// Drain so the process never blocks on a full pipe before it exits.
	for scanner.Scan() {
	}
	err := w.cmd.Wait()
	if !w.stopped.Load() {
		w.log.Warn(subsystem, "fswatch exited unexpectedly: %v", err)
	}
}

// Stop asks fswatch to terminate, killing it if it does not exit within the
// grace period. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.stopped.Store(true)
		if w.cmd.Process == nil {
			return
		}
		if err := w.cmd.Process.Signal(syscall.SIGTERM); err != nil {
			w.log.Debug(subsystem, "terminate failed: %v", err)
		}
		select {
		case <-w.exited:
			return
		case <-time.After(w.grace):
		}
		w.log.Warn(subsystem, "fswatch ignored SIGTERM, killing")
		_ = w.cmd.Process.Kill()
		select {
		case <-w.exited:
		case <-time.After(w.grace):
			w.log.Warn(subsystem, "fswatch still running after kill")
		}
	})
}
