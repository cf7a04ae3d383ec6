// Package config assembles runtime configuration from, in increasing
// precedence: defaults, an optional config.yaml, GAMESTASH_* environment
// variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gamestash/pkg/pricecharting"
)

type Config struct {
	// APIToken authenticates against the PriceCharting download endpoint.
	APIToken string
	BaseURL  string
	// DataFile is the JSON snapshot holding inventory, overrides, and the
	// rate cache.
	DataFile     string
	ListenAddr   string
	FetchTimeout time.Duration
}

// Build loads configuration. cfgFile may be empty, in which case
// ./config.yaml is tried and silently skipped when absent. flags may be
// nil.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("base-url", pricecharting.DefaultBaseURL)
	v.SetDefault("data-file", defaultDataFile())
	v.SetDefault("listen-addr", "0.0.0.0:3001")
	v.SetDefault("fetch-timeout", pricecharting.DefaultTimeout)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("GAMESTASH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The token comes from the upstream provider, so honor its
	// conventional variable name too.
	v.BindEnv("api-token", "GAMESTASH_API_TOKEN", "PRICECHARTING_API_TOKEN")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config.yaml is fine; an explicitly named file
		// that cannot be read is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		APIToken:     v.GetString("api-token"),
		BaseURL:      v.GetString("base-url"),
		DataFile:     v.GetString("data-file"),
		ListenAddr:   v.GetString("listen-addr"),
		FetchTimeout: v.GetDuration("fetch-timeout"),
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = pricecharting.DefaultTimeout
	}
	return cfg, nil
}

func defaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gamestash.json"
	}
	return filepath.Join(home, ".gamestash", "snapshot.json")
}
