package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. LOGTALLY_OUTPUT_SORT.
const EnvPrefix = "LOGTALLY"

// Config represents the complete logtally configuration
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Parse   ParseConfig   `mapstructure:"parse"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OutputConfig controls how the report is rendered
type OutputConfig struct {
	// Format is the report format
	// Options: "text", "json", "yaml"
	Format string `mapstructure:"format"`
	// Sort is the order of rows in the level table (default: "first-seen")
	// Options: "first-seen", "level", "count"
	Sort string `mapstructure:"sort"`
	// Color highlights the level column in text output
	Color bool `mapstructure:"color"`
}

// ParseConfig controls how log lines are read
type ParseConfig struct {
	// Lenient skips malformed lines instead of aborting the whole load
	Lenient bool `mapstructure:"lenient"`
}

// LoggingConfig controls diagnostic logging on stderr
type LoggingConfig struct {
	// Level is the minimum diagnostic level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "text",
			Sort:   "first-seen",
			Color:  false,
		},
		Parse: ParseConfig{
			Lenient: false, // fail on the first malformed line
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// SetDefaults registers default values and environment lookup on v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.sort", defaults.Output.Sort)
	v.SetDefault("output.color", defaults.Output.Color)
	v.SetDefault("parse.lenient", defaults.Parse.Lenient)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}
