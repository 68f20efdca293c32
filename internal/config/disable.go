package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	paneSettingsDir  = ".claude"
	paneSettingsFile = "claude-multiagent.local.md"
	paneDisabledLine = "dashboard_pane: disabled"
)

// DisablePane records in the project that the dashboard pane should not be
// opened again. Calling it twice does not duplicate the marker.
func DisablePane(projectDir string) (string, error) {
	dir := filepath.Join(projectDir, paneSettingsDir)
	path := filepath.Join(dir, paneSettingsFile)

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return path, fmt.Errorf("failed to read %s: %w", path, err)
	}
	for _, line := range strings.Split(string(existing), "\n") {
		if strings.TrimSpace(line) == paneDisabledLine {
			return path, nil
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return path, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	prefix := ""
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		prefix = "\n"
	}
	if _, err := f.WriteString(prefix + paneDisabledLine + "\n"); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
