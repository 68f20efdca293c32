package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Field is one configuration value a plugin declares.
type Field struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Default  string `json:"default"`
}

// Descriptor identifies a plugin on disk. Descriptors are cheap and are
// rebuilt every refresh cycle; nothing about a plugin is cached beyond that.
type Descriptor struct {
	Name string
	Path string
}

// Validate checks that the plugin still exists and is executable.
func (d Descriptor) Validate() error {
	info, err := os.Stat(d.Path)
	if err != nil {
		return &PluginError{Plugin: d.Name, Op: "validate", Err: fmt.Errorf("%w: %v", ErrPluginNotFound, err)}
	}
	if !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
		return &PluginError{Plugin: d.Name, Op: "validate", Err: fmt.Errorf("%w: %s is not an executable file", ErrPluginNotFound, d.Path)}
	}
	return nil
}

// Discover lists the executable plugins in dir, sorted by name. README
// files and markdown are skipped. A missing directory yields no plugins.
func Discover(dir string) ([]Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read providers directory %s: %w", dir, err)
	}

	var out []Descriptor
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "README") || strings.HasSuffix(name, ".md") || strings.HasPrefix(name, ".") {
			continue
		}
		d := Descriptor{Name: name, Path: filepath.Join(dir, name)}
		if d.Validate() != nil {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Lookup builds and validates the descriptor for name inside dir.
func Lookup(dir, name string) (Descriptor, error) {
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return Descriptor{}, &PluginError{Plugin: name, Op: "lookup", Err: fmt.Errorf("%w: invalid provider name %q", ErrPluginNotFound, name)}
	}
	d := Descriptor{Name: name, Path: filepath.Join(dir, name)}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// ResolveValues merges stored values with declared defaults. Stored keys the
// plugin no longer declares are passed through. A required field that ends
// up empty is ErrConfigMissing.
func ResolveValues(fields []Field, stored map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(fields)+len(stored))
	for k, v := range stored {
		values[k] = v
	}
	for _, f := range fields {
		v := strings.TrimSpace(stored[f.Key])
		if v == "" {
			v = f.Default
		}
		if v == "" && f.Required {
			return nil, fmt.Errorf("%w: required field %q is empty", ErrConfigMissing, f.Key)
		}
		values[f.Key] = v
	}
	return values, nil
}
