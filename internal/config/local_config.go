package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfig is the subset of config.yaml read directly from disk rather
// than through the viper instance. Useful before Load has run, or when the
// working directory changed after initialization.
//
// Returns zero values rather than errors: a missing or malformed file
// behaves like an empty one.
type LocalConfig struct {
	DirectoryURL string `yaml:"directory-url"`
	OperatorID   string `yaml:"operator-id"`
}

// LoadLocal reads and parses config.yaml from dir.
func LoadLocal(dir string) *LocalConfig {
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml")) // #nosec G304 - path from caller-supplied config dir
	if err != nil {
		return &LocalConfig{}
	}
	var cfg LocalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &LocalConfig{}
	}
	return &cfg
}

// LoadLocalWithEnv reads config.yaml and applies TOKCTL_* overrides.
func LoadLocalWithEnv(dir string) *LocalConfig {
	cfg := LoadLocal(dir)
	if url := os.Getenv("TOKCTL_DIRECTORY_URL"); url != "" {
		cfg.DirectoryURL = url
	}
	if op := os.Getenv("TOKCTL_OPERATOR_ID"); op != "" {
		cfg.OperatorID = op
	}
	return cfg
}
