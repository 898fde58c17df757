package ledger

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDir returns the OS-appropriate default data directory for till.
//
//   - macOS:   ~/Library/Application Support/till
//   - Linux:   $XDG_DATA_HOME/till (fallback ~/.local/share/till)
//   - Windows: %LOCALAPPDATA%\till (fallback %APPDATA%\till)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "till")
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "till")
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "till")
		}
		return filepath.Join(home, "till")
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, "till")
		}
		return filepath.Join(home, ".local", "share", "till")
	}
}
