package fleet

import (
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the persisted fleet configuration file.
const ConfigFileName = "stereorig.ini"

// DefaultPath returns where the configuration file should be read from and
// written to. The working directory is checked first so an operator can keep
// a per-site file next to their data; otherwise the file lives next to the
// executable. The returned path may not exist yet.
func DefaultPath() string {
	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(filepath.Dir(exe), ConfigFileName)
}
