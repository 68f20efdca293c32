package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	"watchdash/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeFSWatch(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fswatch")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestStart_NoChangeSource(t *testing.T) {
	dir := t.TempDir()

	_, err := Start(Options{Binary: filepath.Join(dir, "missing"), Paths: []string{dir}, Log: logging.Discard()})
	assert.True(t, errors.Is(err, ErrNoChangeSource))

	_, err = Start(Options{Binary: "sh", Log: logging.Discard()})
	assert.True(t, errors.Is(err, ErrNoChangeSource))
}

func TestExistingPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	got := ExistingPaths(dir, "", filepath.Join(dir, "missing"), file)
	assert.Equal(t, []string{dir, file}, got)
}

func TestWatcher_DeliversAndCollapsesEvents(t *testing.T) {
	bin := fakeFSWatch(t, `echo one; echo two; echo three; exec sleep 30`)
	w, err := Start(Options{Binary: bin, Paths: []string{t.TempDir()}, Log: logging.Discard()})
	require.NoError(t, err)
	defer w.Stop()

	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("no change event")
	}
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, len(w.Events()), 1, "burst collapses into at most one pending event")
}

func TestWatcher_StopTerminates(t *testing.T) {
	bin := fakeFSWatch(t, `exec sleep 30`)
	w, err := Start(Options{Binary: bin, Paths: []string{t.TempDir()}, Log: logging.Discard()})
	require.NoError(t, err)

	start := time.Now()
	w.Stop()
	assert.Less(t, time.Since(start), time.Second)

	_, open := <-w.Events()
	assert.False(t, open)
	assert.NotPanics(t, w.Stop)
}

func TestWatcher_StopKillsAfterGrace(t *testing.T) {
	bin := fakeFSWatch(t, `trap '' TERM; while :; do sleep 0.05; done`)
	w, err := Start(Options{Binary: bin, Paths: []string{t.TempDir()}, StopGrace: 200 * time.Millisecond, Log: logging.Discard()})
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	start := time.Now()
	w.Stop()
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}
