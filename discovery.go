package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names the environment variable consulted for an explicit
	// configuration file path.
	EnvConfigPath = "CONFIG_FILE_PATH"

	// DefaultConfigPath is the conventional relative location checked when
	// no explicit path is given.
	DefaultConfigPath = "config/config.toml"
)

// FindConfigFile resolves a configuration file path using the standard
// priority order:
//  1. CONFIG_FILE_PATH environment variable
//  2. config/config.toml relative to the working directory
//  3. config/config.toml relative to the executable's directory
//
// A CONFIG_FILE_PATH that points at a missing file is skipped with a warning
// on stderr rather than failing, so a stale variable cannot mask the
// conventional locations.
func FindConfigFile() (string, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		if fileExists(envPath) {
			return envPath, nil
		}
		fmt.Fprintf(os.Stderr,
			"Warning: %s is set to '%s' but file does not exist. Falling back to default paths.\n",
			EnvConfigPath, envPath)
	}

	if fileExists(DefaultConfigPath) {
		return DefaultConfigPath, nil
	}

	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %s not found and executable directory unavailable: %v",
			ErrSourceNotFound, DefaultConfigPath, err)
	}

	fallback := filepath.Join(filepath.Dir(exePath), DefaultConfigPath)
	if fileExists(fallback) {
		return fallback, nil
	}

	return "", &SourceError{Source: fallback, Err: ErrSourceNotFound}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
