// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/bank-insights/internal/parsererror"
	"fjacquet/bank-insights/internal/report"
	"fjacquet/bank-insights/internal/stmtparser"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "BANKINSIGHTS"

const (
	MinWorkers = 1
	MaxWorkers = 64
)

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type ParserConfig struct {
	Variant string `mapstructure:"variant" yaml:"variant"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" yaml:"textfile"`
}

// Config represents the complete application configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Parser  ParserConfig  `mapstructure:"parser" yaml:"parser"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	CSV     CSVConfig     `mapstructure:"csv" yaml:"csv"`
	Batch   BatchConfig   `mapstructure:"batch" yaml:"batch"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Parser: ParserConfig{Variant: string(stmtparser.VariantAuto)},
		Output: OutputConfig{Format: string(report.FormatJSON)},
		CSV:    CSVConfig{Delimiter: ","},
		Batch:  BatchConfig{Workers: 4},
	}
}

// Load initializes Viper configuration with hierarchical loading. When
// configFile is empty, config.yaml is searched for in the usual locations
// and its absence is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.bank-insights")
		v.AddConfigPath(".bank-insights")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("parser.variant", d.Parser.Variant)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("csv.delimiter", d.CSV.Delimiter)
	v.SetDefault("batch.workers", d.Batch.Workers)
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &parsererror.ValidationError{Field: "log level", Reason: config.Log.Level}
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &parsererror.ValidationError{
			Field:  "log format",
			Reason: fmt.Sprintf("%s (must be 'text' or 'json')", config.Log.Format),
		}
	}

	if _, err := config.Variant(); err != nil {
		return &parsererror.ValidationError{Field: "parser.variant", Reason: err.Error()}
	}

	if _, err := report.ParseFormat(config.Output.Format); err != nil {
		return &parsererror.ValidationError{Field: "output.format", Reason: err.Error()}
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return &parsererror.ValidationError{
			Field:  "csv.delimiter",
			Reason: fmt.Sprintf("must be a single character, got: %q", config.CSV.Delimiter),
		}
	}

	if config.Batch.Workers < MinWorkers || config.Batch.Workers > MaxWorkers {
		return &parsererror.ValidationError{
			Field:  "batch.workers",
			Reason: fmt.Sprintf("must be between %d and %d, got: %d", MinWorkers, MaxWorkers, config.Batch.Workers),
		}
	}

	return nil
}

// Variant returns the configured grammar variant.
func (c *Config) Variant() (stmtparser.Variant, error) {
	return stmtparser.ParseVariant(c.Parser.Variant)
}

// OutputFormat returns the configured output format.
func (c *Config) OutputFormat() report.Format {
	f, err := report.ParseFormat(c.Output.Format)
	if err != nil {
		return report.FormatJSON
	}
	return f
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// Validate checks a configuration built or modified outside Load.
func (c *Config) Validate() error {
	return validateConfig(c)
}
