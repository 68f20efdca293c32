package provider

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	"watchdash/internal/status"
	"watchdash/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePlugin creates an executable shell plugin in dir. body is the case
// statement content handling "$1".
func writePlugin(t *testing.T, dir, name, body string) Descriptor {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\ncase \"$1\" in\n" + body + "\nesac\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return Descriptor{Name: name, Path: path}
}

func newTestRunner(log *logging.Logger) *Runner {
	return NewRunner(Options{IntrospectTimeout: time.Second, ListTimeout: 200 * time.Millisecond}, status.NewMapper(), log)
}

func TestRunner_Name(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner(logging.Discard())

	named := writePlugin(t, dir, "render", `name) echo "Render.com"; echo ignored ;;`)
	got, err := r.Name(context.Background(), named)
	require.NoError(t, err)
	assert.Equal(t, "Render.com", got)

	silent := writePlugin(t, dir, "silent", `name) ;;`)
	got, err = r.Name(context.Background(), silent)
	require.NoError(t, err)
	assert.Equal(t, "silent", got)
}

func TestRunner_Config(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner(logging.Discard())

	d := writePlugin(t, dir, "render", `config) echo '{"fields":[{"key":"serviceid","label":"Service ID","required":true},{"key":"apikeyenv","default":"RENDER_DOT_COM_TOK"}]}' ;;`)
	fields, err := r.Config(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, Field{Key: "serviceid", Label: "Service ID", Required: true}, fields[0])
	assert.Equal(t, "apikeyenv", fields[1].Label)
	assert.Equal(t, "RENDER_DOT_COM_TOK", fields[1].Default)
}

func TestRunner_ConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner(logging.Discard())

	d := writePlugin(t, dir, "broken", `config) echo 'not json' ;;`)
	_, err := r.Config(context.Background(), d)
	assert.True(t, errors.Is(err, ErrConfigInvalid))
}

func TestRunner_ListPassesNamespacedEnv(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner(logging.Discard())

	d := writePlugin(t, dir, "echoer", `list) printf '{"commit":"%s","message":"m","status":"live"}\n' "$DEPLOY_WATCH_SERVICEID" ;;`)
	records, err := r.List(context.Background(), d, map[string]string{"serviceid": "srv-123"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "srv-123", records[0].ID)
}

func TestRunner_ListSkipsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	log := logging.NewWithEntries(&bytes.Buffer{}, logging.LevelDebug, logging.LevelWarn, 8)
	r := newTestRunner(log)

	d := writePlugin(t, dir, "render", `list)
  echo '{"commit":"abc1234","message":"fix login","build_status":"success","deploy_status":"live","build_started":"1700000000","deploy_finished":"1700000090"}'
  echo '{"commit": broken'
  ;;`)

	records, err := r.List(context.Background(), d, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "abc1234", records[0].ID)
	assert.Equal(t, status.Live, records[0].Build)
	assert.Equal(t, status.Live, records[0].Deploy)
	assert.Equal(t, int64(1700000090), records[0].FinishedAt.Unix())

	select {
	case e := <-log.Entries():
		assert.Equal(t, logging.LevelWarn, e.Level)
		assert.Contains(t, e.Message, "line 2")
	default:
		t.Fatal("expected a warning for the malformed line")
	}
}

func TestRunner_ListEmptyIsSuccess(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner(logging.Discard())

	d := writePlugin(t, dir, "empty", `list) exit 0 ;;`)
	records, err := r.List(context.Background(), d, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRunner_ListKeepsRecordsWhenHelperOutlivesPlugin(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(Options{IntrospectTimeout: time.Second, ListTimeout: 10 * time.Second}, status.NewMapper(), logging.Discard())

	d := writePlugin(t, dir, "bg", `list) echo '{"commit":"abc","status":"live"}'; (sleep 5; echo late) & exit 0 ;;`)
	records, err := r.List(context.Background(), d, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "abc", records[0].ID)
}

func TestRunner_Failures(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner(logging.Discard())

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"non-zero exit", `list) echo '{"commit":"a","status":"live"}'; echo boom >&2; exit 2 ;;`, ErrPluginNonZeroExit},
		{"timeout", `list) exec sleep 5 ;;`, ErrPluginTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := writePlugin(t, dir, "p", tt.body)
			records, err := r.List(context.Background(), d, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Nil(t, records)

			var perr *PluginError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, OpList, perr.Op)
		})
	}
}

func TestRunner_RevalidatesOnEveryCall(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner(logging.Discard())

	d := writePlugin(t, dir, "gone", `name) echo Gone ;;`)
	_, err := r.Name(context.Background(), d)
	require.NoError(t, err)

	require.NoError(t, os.Remove(d.Path))
	_, err = r.Name(context.Background(), d)
	assert.True(t, errors.Is(err, ErrPluginNotFound))
}

func TestRunner_Env(t *testing.T) {
	r := newTestRunner(logging.Discard())
	env := r.Env(map[string]string{"serviceid": "s", "apikeyenv": "TOK"})
	assert.Equal(t, []string{"DEPLOY_WATCH_APIKEYENV=TOK", "DEPLOY_WATCH_SERVICEID=s"}, env)
}
