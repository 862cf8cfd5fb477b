package binding

import (
	"os"
	"path/filepath"
)

// FindModule searches the usual locations for a tracking module file and
// returns its absolute path, or "" when none exists. Checked in order:
// the working directory, a modules/ subdirectory, the executable's
// directory, and ~/.mudra/modules.
func FindModule(name string) string {
	return findFile(name, "modules")
}

// FindGraph searches the usual locations for a pipeline graph description
// consumed by the module at init time.
func FindGraph(name string) string {
	return findFile(name, "graphs")
}

func findFile(name, subdir string) string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		name,
		filepath.Join(subdir, name),
		filepath.Join("..", subdir, name),
		filepath.Join(execDir, name),
		filepath.Join(execDir, subdir, name),
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".mudra", subdir, name))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}
