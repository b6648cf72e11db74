package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "pawnsolver"

// dataDirOverrideEnv lets a caller pin both the table dump and the backing
// store under one directory, without touching the platform default.
const dataDirOverrideEnv = "PAWNSOLVER_DATA_DIR"

// platformBaseDir resolves the OS convention for per-user application data,
// before appName or any pawnsolver-specific subdirectory is appended.
func platformBaseDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, "Library", "Application Support"), nil

	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return appData, nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, "AppData", "Roaming"), nil

	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return xdg, nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, ".local", "share"), nil
	}
}

// DefaultDataDir returns the directory the transposition table dump is
// read from and written to:
//   - macOS: ~/Library/Application Support/pawnsolver/
//   - Linux: $XDG_DATA_HOME/pawnsolver/ (or ~/.local/share/pawnsolver/)
//   - Windows: %APPDATA%/pawnsolver/
//
// PAWNSOLVER_DATA_DIR, if set, overrides the platform default outright.
func DefaultDataDir() (string, error) {
	if override := os.Getenv(dataDirOverrideEnv); override != "" {
		return ensureDir(override)
	}
	base, err := platformBaseDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

// DefaultBackingStoreDir returns the directory the chained table's badger
// backing store opens by default: a fixed subdirectory of DefaultDataDir,
// so a single override or a single platform default moves both stores
// together.
func DefaultBackingStoreDir() (string, error) {
	dataDir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dataDir, "backing"))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
