// Package config resolves runtime settings for the token lifecycle
// tooling. Precedence, highest first: command-line flags, TOKCTL_*
// environment variables, config.yaml, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyDirectoryURL   = "directory-url"
	KeyOperatorID     = "operator-id"
	KeyRequestTimeout = "request-timeout"
	KeyListenAddr     = "listen-addr"
	KeyLogLevel       = "log-level"
	KeyLogJSON        = "log-json"
)

// Config is the resolved runtime configuration.
type Config struct {
	// DirectoryURL is the base URL of the Token Directory Service.
	DirectoryURL string
	// OperatorID identifies the operator on every transition request.
	OperatorID string
	// RequestTimeout bounds each directory call.
	RequestTimeout time.Duration
	// ListenAddr is the admin HTTP server's bind address.
	ListenAddr string

	LogLevel string
	LogJSON  bool
}

// Load resolves configuration. configDir, when non-empty, names the
// directory searched for config.yaml; a missing file is not an error.
func Load(configDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyDirectoryURL, "http://localhost:8000")
	v.SetDefault(KeyOperatorID, "")
	v.SetDefault(KeyRequestTimeout, "10s")
	v.SetDefault(KeyListenAddr, ":8089")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogJSON, false)

	v.SetEnvPrefix("TOKCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	timeout, err := time.ParseDuration(v.GetString(KeyRequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyRequestTimeout, err)
	}

	return &Config{
		DirectoryURL:   strings.TrimRight(v.GetString(KeyDirectoryURL), "/"),
		OperatorID:     v.GetString(KeyOperatorID),
		RequestTimeout: timeout,
		ListenAddr:     v.GetString(KeyListenAddr),
		LogLevel:       v.GetString(KeyLogLevel),
		LogJSON:        v.GetBool(KeyLogJSON),
	}, nil
}
