package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"watchdash/internal/provider"
	"watchdash/internal/utils"
)

// StateFileName is the per-project state file.
const StateFileName = ".deploy-watch.json"

const (
	keyProvider = "provider"
	keyTabs     = "tabs"
)

// Tab names used in the tabs section.
const (
	TabDeploys = "deploys"
	TabActions = "actions"
	TabAgents  = "agents"
)

// TabConfig is one entry of the tabs section. A nil Enabled means enabled.
type TabConfig struct {
	Enabled *bool  `json:"enabled,omitempty"`
	Repo    string `json:"repo,omitempty"`
}

// ProjectState is the decoded state file.
type ProjectState struct {
	Provider string
	Values   map[string]string
	Tabs     map[string]TabConfig

	// extra keeps top-level keys this version does not interpret, including
	// field values of previously selected providers.
	extra map[string]json.RawMessage
}

// TabEnabled reports whether tab is switched on.
func (s ProjectState) TabEnabled(tab string) bool {
	tc, ok := s.Tabs[tab]
	if !ok || tc.Enabled == nil {
		return true
	}
	return *tc.Enabled
}

// TabRepo returns the repository override of tab, if any.
func (s ProjectState) TabRepo(tab string) string {
	return s.Tabs[tab].Repo
}

// ValuesFor returns the stored field values of name, which need not be the
// selected provider.
func (s ProjectState) ValuesFor(name string) map[string]string {
	if name == s.Provider {
		return copyValues(s.Values)
	}
	raw, ok := s.extra[name]
	if !ok {
		return map[string]string{}
	}
	values, err := decodeValues(raw)
	if err != nil {
		return map[string]string{}
	}
	return values
}

// SelectProvider makes name the configured provider with values. The
// previous provider's values are kept for a later switch back.
func (s *ProjectState) SelectProvider(name string, values map[string]string) {
	if s.Provider != "" && s.Provider != name {
		if raw, err := json.Marshal(s.Values); err == nil {
			if s.extra == nil {
				s.extra = make(map[string]json.RawMessage)
			}
			s.extra[s.Provider] = raw
		}
	}
	delete(s.extra, name)
	s.Provider = name
	s.Values = copyValues(values)
}

// ClearProvider drops the selection and its values.
func (s *ProjectState) ClearProvider() {
	s.Provider = ""
	s.Values = nil
}

func (s ProjectState) empty() bool {
	return s.Provider == "" && len(s.Tabs) == 0 && len(s.extra) == 0
}

// ProjectStore reads and writes the state file of one project.
type ProjectStore struct {
	path string
}

// NewProjectStore returns the store for projectDir.
func NewProjectStore(projectDir string) *ProjectStore {
	return &ProjectStore{path: filepath.Join(projectDir, StateFileName)}
}

// Path returns the state file location.
func (p *ProjectStore) Path() string { return p.path }

// Load reads the state file. A missing file is an empty state; a file that
// is not a JSON object is provider.ErrConfigInvalid.
func (p *ProjectStore) Load() (ProjectState, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ProjectState{}, nil
		}
		return ProjectState{}, fmt.Errorf("failed to read %s: %w", p.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ProjectState{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ProjectState{}, fmt.Errorf("%w: %s: %v", provider.ErrConfigInvalid, p.path, err)
	}

	var state ProjectState
	if v, ok := raw[keyProvider]; ok {
		if err := json.Unmarshal(v, &state.Provider); err != nil {
			return ProjectState{}, fmt.Errorf("%w: %s: provider must be a string", provider.ErrConfigInvalid, p.path)
		}
		delete(raw, keyProvider)
	}
	if v, ok := raw[keyTabs]; ok {
		if err := json.Unmarshal(v, &state.Tabs); err != nil {
			return ProjectState{}, fmt.Errorf("%w: %s: tabs: %v", provider.ErrConfigInvalid, p.path, err)
		}
		delete(raw, keyTabs)
	}
	if state.Provider != "" {
		state.Values = map[string]string{}
		if v, ok := raw[state.Provider]; ok {
			values, err := decodeValues(v)
			if err != nil {
				return ProjectState{}, fmt.Errorf("%w: %s: %s: %v", provider.ErrConfigInvalid, p.path, state.Provider, err)
			}
			state.Values = values
			delete(raw, state.Provider)
		}
	}
	if len(raw) > 0 {
		state.extra = raw
	}
	return state, nil
}

// Save writes state atomically. An empty state removes the file.
func (p *ProjectStore) Save(state ProjectState) error {
	if state.empty() {
		return p.Remove()
	}

	out := make(map[string]json.RawMessage, len(state.extra)+3)
	for k, v := range state.extra {
		out[k] = v
	}
	if state.Provider != "" {
		name, _ := json.Marshal(state.Provider)
		values, err := json.Marshal(orEmpty(state.Values))
		if err != nil {
			return err
		}
		out[keyProvider] = name
		out[state.Provider] = values
	}
	if len(state.Tabs) > 0 {
		tabs, err := json.Marshal(state.Tabs)
		if err != nil {
			return err
		}
		out[keyTabs] = tabs
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project state: %w", err)
	}
	return writeFileAtomic(p.path, append(data, '\n'))
}

// Remove deletes the state file. Missing files are not an error.
func (p *ProjectStore) Remove() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", p.path, err)
	}
	return nil
}

// ResolveProjectDir picks the project directory: the explicit argument,
// else the enclosing git work tree, else the working directory.
func ResolveProjectDir(ctx context.Context, arg string) (string, error) {
	if arg != "" {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("project directory: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project directory %s is not a directory", abs)
		}
		return abs, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if top, err := utils.GitTopLevel(ctx, wd); err == nil && top != "" {
		return top, nil
	}
	return wd, nil
}

// decodeValues accepts an object of scalars and renders each as a string.
func decodeValues(raw json.RawMessage) (map[string]string, error) {
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(generic))
	for k, val := range generic {
		switch v := val.(type) {
		case string:
			values[k] = v
		case float64:
			values[k] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			values[k] = strconv.FormatBool(v)
		case nil:
			values[k] = ""
		default:
			return nil, fmt.Errorf("field %q is not a scalar", k)
		}
	}
	return values, nil
}

func copyValues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
