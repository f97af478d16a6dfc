package config

// Config represents the main configuration structure, loaded from
// scrub-db.yaml (or one of its dotted/.yml variants).
type Config struct {
	// AutoDetect is accepted in the schema for config-file compatibility but
	// has no effect in this engine; detection is always rule-scoped.
	AutoDetect bool `yaml:"auto_detect" mapstructure:"auto_detect"`

	// CustomRules maps a line pattern (typically "table.column") to an
	// anonymization method identifier such as "fake_email" or "mask_ssn".
	CustomRules map[string]string `yaml:"custom_rules" mapstructure:"custom_rules"`

	// PreserveRelationships keeps repeated occurrences of one original value
	// mapped to one synthetic replacement within a run.
	PreserveRelationships bool `yaml:"preserve_relationships" mapstructure:"preserve_relationships"`

	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
		Path    string `yaml:"path" mapstructure:"path"`
	} `yaml:"file" mapstructure:"file"`
}

// GetDefaults returns a configuration with sensible defaults: no rules
// (pass-through mode), relationship preservation on, console logging.
func GetDefaults() *Config {
	cfg := &Config{
		AutoDetect:            false,
		CustomRules:           map[string]string{},
		PreserveRelationships: true,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
	cfg.Logging.File.Path = "logs/scrubdb.log"
	return cfg
}
