package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// appName is the application name used for config and cache directories.
const appName = "mzqc"

// defaultCacheTTLHours is how long downloaded ontologies stay fresh.
const defaultCacheTTLHours = 24

// Config holds user defaults read from the optional config file.
// Command-line flags always take precedence over config values.
type Config struct {
	// SchemaPath is the default mzQC schema file used when --schema is
	// not given.
	SchemaPath string `toml:"schema_path"`

	// Ontology is the default OBO source (path or URL) for the cv
	// command.
	Ontology string `toml:"ontology"`

	// CacheDir overrides the ontology download cache directory.
	CacheDir string `toml:"cache_dir"`

	// CacheTTLHours is the freshness window for cached downloads.
	// 0 uses the default; negative disables expiry.
	CacheTTLHours int `toml:"cache_ttl_hours"`
}

// configPath returns the config file location using the XDG standard
// (~/.config/mzqc/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the download cache directory using the XDG standard
// (~/.cache/mzqc/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadConfig reads the config file if it exists. A missing file yields a
// zero Config; a malformed file is an error.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFile(path)
}

// loadConfigFile reads and decodes a specific config file.
func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
