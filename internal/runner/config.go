package runner

import (
	"os"
	"path/filepath"

	"github.com/projectdiscovery/analogx"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"
)

// defaultConfigPath is $HOME/.config/analogx/config.yaml.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "analogx", "config.yaml")
}

// ensureDefaultConfig writes the sample config when none exists and returns
// its path, or "" when it cannot be used.
func ensureDefaultConfig() string {
	path := defaultConfigPath()
	if path == "" {
		return ""
	}
	if fileutil.FileExists(path) {
		return path
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		gologger.Debug().Msgf("could not create config directory: %v", err)
		return ""
	}
	if err := analogx.GenerateSample(path); err != nil {
		gologger.Error().Msgf("failed to save default config to %v got: %v", path, err)
		return ""
	}
	return path
}
