package workspace

import (
	"os"
	"path/filepath"
)

// FindUp walks from startDir toward the filesystem root looking for the
// first existing file among names. Candidate order is significant: at
// each directory level the first name that exists wins, even when a
// later candidate also exists. Returns "" when no ancestor, startDir
// included, contains any candidate.
func FindUp(names []string, startDir string) string {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range names {
			p := filepath.Join(dir, name)
			if fileExists(p) {
				return p
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ProjectConfigPath locates the nearest project configuration file. The
// search tries, in order: an upward walk from explicitStart when
// non-empty, an upward walk from the working directory, and an upward
// walk from the directory holding the running binary. Returns "" when
// nothing is found.
func ProjectConfigPath(explicitStart string) string {
	names := []string{configFileName, altConfigFileName}
	if explicitStart != "" {
		if p := FindUp(names, explicitStart); p != "" {
			return p
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		if p := FindUp(names, cwd); p != "" {
			return p
		}
	}
	if exe, err := os.Executable(); err == nil {
		if p := FindUp(names, filepath.Dir(exe)); p != "" {
			return p
		}
	}
	return ""
}

// GlobalConfigPath returns the location of the user-level configuration
// file, or "" when none exists. The XDG config directory is preferred
// over the plain home-directory location.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNoHomeDir
	}
	xdgPath := filepath.Join(xdgConfigHome(home), xdgAppDir, globalFileName)
	if fileExists(xdgPath) {
		return xdgPath, nil
	}
	homePath := filepath.Join(home, globalFileName)
	if fileExists(homePath) {
		return homePath, nil
	}
	return "", nil
}

// xdgConfigHome resolves $XDG_CONFIG_HOME with the standard
// <home>/.config fallback.
func xdgConfigHome(home string) string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(home, ".config")
}

// defaultGlobalPath is where new global configuration is written,
// regardless of where an existing file was found.
func defaultGlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNoHomeDir
	}
	return filepath.Join(home, globalFileName), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
