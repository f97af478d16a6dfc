package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file and environment variables. When path is
// empty the usual file names are auto-discovered (scrub-db.yaml and friends,
// dotted variants included); a missing config file is not an error and yields
// the defaults, which put the engine in pass-through mode. The returned
// string names the config file actually used, empty when running on defaults.
func Load(path string) (*Config, string, error) {
	config := GetDefaults()

	// Rule patterns are dotted ("users.email"); the default "." key delimiter
	// would split them into nested keys during unmarshalling.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigName("scrub-db")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.scrubdb/")
	v.AddConfigPath("/etc/scrubdb/")

	// Environment variable overrides
	v.SetEnvPrefix("SCRUBDB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("::", "_"))

	if path != "" {
		v.SetConfigFile(path)
	} else if dotted := findDotted(); dotted != "" {
		v.SetConfigFile(dotted)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error - we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, "", fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}

	return config, v.ConfigFileUsed(), nil
}

// findDotted probes the hidden config file names accepted in the working
// directory; viper's config-name search does not cover dotfiles.
func findDotted() string {
	for _, name := range []string{".scrub-db.yaml", ".scrub-db.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", config.Logging.Format)
	}

	return nil
}
