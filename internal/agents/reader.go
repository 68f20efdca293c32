package agents

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDir is the status directory name inside a project or worktree.
const DefaultDir = ".agent-status.d"

const worktreesDir = ".worktrees"

// Collect reads the status directory of projectDir, then those of its
// worktrees and their nested worktrees. A file name seen earlier shadows
// later ones. The result is sorted by agent name.
func Collect(projectDir, statusDir string) ([]Agent, error) {
	if statusDir == "" {
		statusDir = DefaultDir
	}
	seen := make(map[string]bool)

	agents, err := readDir(filepath.Join(projectDir, statusDir), seen)
	if err != nil {
		return nil, err
	}
	for _, dir := range StatusDirs(projectDir, statusDir)[1:] {
		more, err := readDir(dir, seen)
		if err != nil {
			continue
		}
		agents = append(agents, more...)
	}

	sort.SliceStable(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })
	return agents, nil
}

// StatusDirs lists every status directory Collect looks at, main first,
// whether or not it exists.
func StatusDirs(projectDir, statusDir string) []string {
	if statusDir == "" {
		statusDir = DefaultDir
	}
	dirs := []string{filepath.Join(projectDir, statusDir)}
	for _, wt := range subdirs(filepath.Join(projectDir, worktreesDir)) {
		dirs = append(dirs, filepath.Join(wt, statusDir))
		for _, nested := range subdirs(wt) {
			if filepath.Base(nested) == statusDir {
				continue
			}
			dirs = append(dirs, filepath.Join(nested, statusDir))
		}
	}
	return dirs
}

func subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out
}

// readDir parses the files of one status directory in name order. A
// missing directory yields nothing.
func readDir(dir string, seen map[string]bool) ([]Agent, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var agents []Agent
	for _, e := range entries {
		name := e.Name()
		if seen[name] || !e.Type().IsRegular() {
			continue
		}
		line, err := readFirstLine(filepath.Join(dir, name))
		if err != nil || line == "" {
			continue
		}
		a := ParseLine(line)
		a.File = name
		agents = append(agents, a)
		seen[name] = true
	}
	return agents, nil
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimSpace(line), nil
}
