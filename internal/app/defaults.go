package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults holds the default locations used when no flag or config key
// overrides them.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
}

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - PHOTORG_CONFIG_PATH: config file location (default: ~/.config/photorg.toml)
//   - PHOTORG_HOME: base directory for photorg data (default: ~/.local/share/photorg)
func GetDefaults() (*Defaults, error) {
	configPath, err := envOrHome("PHOTORG_CONFIG_PATH", ".config", "photorg.toml")
	if err != nil {
		return nil, err
	}

	baseDir, err := envOrHome("PHOTORG_HOME", ".local", "share", "photorg")
	if err != nil {
		return nil, err
	}

	return &Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
	}, nil
}

// envOrHome returns the value of env if set, otherwise elems joined below the
// user's home directory.
func envOrHome(env string, elems ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elems...)...), nil
}
