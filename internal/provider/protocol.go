// Package provider implements the out-of-process plugin protocol. A plugin
// is any executable answering three operations, selected by its first
// argument:
//
//	name    one line, the display name
//	config  one JSON object {"fields": [{key, label, required, default}, ...]}
//	list    zero or more JSON lines, one record each
//
// Configuration reaches the plugin as environment variables named
// <prefix><UPPERCASED KEY>. Exit status 0 is required for success.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"watchdash/internal/status"
	"watchdash/internal/utils"
	"watchdash/pkg/logging"
)

const (
	DefaultIntrospectTimeout = 5 * time.Second
	DefaultListTimeout       = 30 * time.Second
	DefaultEnvPrefix         = "DEPLOY_WATCH_"

	subsystem = "Provider"
)

// Operation names passed to the plugin.
const (
	OpName   = "name"
	OpConfig = "config"
	OpList   = "list"
)

// Options tunes a Runner. Zero values select the defaults above.
type Options struct {
	IntrospectTimeout time.Duration
	ListTimeout       time.Duration
	EnvPrefix         string
	// Dir is the working directory plugins run in, normally the project dir.
	Dir string
}

// Runner invokes plugins. It holds no per-plugin state.
type Runner struct {
	opts   Options
	mapper *status.Mapper
	log    *logging.Logger
}

// NewRunner builds a Runner. mapper resolves raw provider codes.
func NewRunner(opts Options, mapper *status.Mapper, log *logging.Logger) *Runner {
	if opts.IntrospectTimeout <= 0 {
		opts.IntrospectTimeout = DefaultIntrospectTimeout
	}
	if opts.ListTimeout <= 0 {
		opts.ListTimeout = DefaultListTimeout
	}
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = DefaultEnvPrefix
	}
	if mapper == nil {
		mapper = status.NewMapper()
	}
	return &Runner{opts: opts, mapper: mapper, log: log}
}

// Name returns the plugin's display label, falling back to the file name
// when the plugin prints nothing.
func (r *Runner) Name(ctx context.Context, d Descriptor) (string, error) {
	out, err := r.invoke(ctx, d, OpName, r.opts.IntrospectTimeout, nil)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(firstLine(string(out)))
	if name == "" {
		name = d.Name
	}
	return name, nil
}

// Config returns the plugin's declared configuration fields.
func (r *Runner) Config(ctx context.Context, d Descriptor) ([]Field, error) {
	out, err := r.invoke(ctx, d, OpConfig, r.opts.IntrospectTimeout, nil)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var decl struct {
		Fields []Field `json:"fields"`
	}
	if err := json.Unmarshal(trimmed, &decl); err != nil {
		return nil, &PluginError{Plugin: d.Name, Op: OpConfig, Err: fmt.Errorf("%w: %v", ErrConfigInvalid, err)}
	}
	for i, f := range decl.Fields {
		if f.Key == "" {
			return nil, &PluginError{Plugin: d.Name, Op: OpConfig, Err: fmt.Errorf("%w: field %d has no key", ErrConfigInvalid, i)}
		}
		if f.Label == "" {
			decl.Fields[i].Label = f.Key
		}
	}
	return decl.Fields, nil
}

// List fetches the plugin's records. An empty, cleanly exiting plugin is an
// empty success. Malformed lines are logged and skipped.
func (r *Runner) List(ctx context.Context, d Descriptor, values map[string]string) ([]status.Record, error) {
	out, err := r.invoke(ctx, d, OpList, r.opts.ListTimeout, values)
	if err != nil {
		return nil, err
	}
	records, skipped := ParseRecords(out, d.Name, r.mapper)
	for _, e := range skipped {
		r.log.Warn(subsystem, "skipped record from %s: %v", d.Name, e)
	}
	return records, nil
}

// Env renders values as plugin environment entries, sorted by key.
func (r *Runner) Env(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, r.opts.EnvPrefix+strings.ToUpper(k)+"="+values[k])
	}
	return env
}

func (r *Runner) invoke(ctx context.Context, d Descriptor, op string, timeout time.Duration, values map[string]string) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	argv := []string{d.Path, op}
	r.log.Debug(subsystem, "running %s", utils.FormatCommand(argv))

	res, err := utils.Run(ctx, utils.ExecOptions{
		Dir:     r.opts.Dir,
		Timeout: timeout,
		Env:     r.Env(values),
	}, argv)
	if err == nil {
		r.log.Debug(subsystem, "%s %s finished in %s", d.Name, op, res.Duration.Round(time.Millisecond))
		return res.Stdout, nil
	}

	perr := &PluginError{Plugin: d.Name, Op: op, ExitCode: res.ExitCode, Stderr: strings.TrimSpace(firstLine(string(res.Stderr)))}
	switch {
	case res.TimedOut:
		perr.Err = fmt.Errorf("%w after %s", ErrPluginTimeout, timeout)
	case ctx.Err() != nil:
		perr.Err = ctx.Err()
	case res.ExitCode != 0:
		perr.Err = fmt.Errorf("%w: exit status %d", ErrPluginNonZeroExit, res.ExitCode)
	case !res.Started:
		perr.Err = fmt.Errorf("%w: %v", ErrPluginNotFound, err)
	default:
		perr.Err = fmt.Errorf("%w: %v", ErrPluginNonZeroExit, err)
	}
	r.log.Warn(subsystem, "%v", perr)
	return nil, perr
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
