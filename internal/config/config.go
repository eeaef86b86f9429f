package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete ETL configuration.
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Cleaning  CleaningConfig  `yaml:"cleaning" envconfig:"CLEANING"`
	Dimension DimensionConfig `yaml:"dimension" envconfig:"DIMENSION"`
	Warehouse WarehouseConfig `yaml:"warehouse" envconfig:"WAREHOUSE"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig describes the raw workbook to ingest.
type InputConfig struct {
	Path  string `yaml:"path" envconfig:"PATH"`
	Sheet string `yaml:"sheet" envconfig:"SHEET"` // empty means union of all sheets
}

// OutputConfig describes where the star-schema CSV files are written.
type OutputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" default:"data/processed"`
}

// CleaningConfig controls the normalizer. The two historical cleaning
// variants are unified here: day-first date parsing and currency-symbol
// stripping are opt-in options of the single normalizer.
type CleaningConfig struct {
	DayFirst      bool `yaml:"day_first" envconfig:"DAY_FIRST" default:"false"`
	StripCurrency bool `yaml:"strip_currency" envconfig:"STRIP_CURRENCY" default:"false"`
}

// DimensionConfig controls dimension building.
type DimensionConfig struct {
	DateBufferMonths int `yaml:"date_buffer_months" envconfig:"DATE_BUFFER_MONTHS" default:"6"`
}

// WarehouseConfig controls the optional SQLite load of the star schema.
// Disabled when Path is empty; CSV output is always produced.
type WarehouseConfig struct {
	Path string `yaml:"path" envconfig:"PATH"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/etl.log"`
}

// Load loads configuration from environment variables and, if present, the
// retailetl.yaml file next to the working directory. Environment variables
// win over file values.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("RETAIL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Dimension.DateBufferMonths < 0 {
		return fmt.Errorf("dimension.date_buffer_months must not be negative, got %d", c.Dimension.DateBufferMonths)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	return nil
}

// loadFromFile reads a YAML config file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// mergeConfigs overlays env (non-zero values) on top of the file config.
func mergeConfigs(file, env Config) Config {
	merged := file

	if env.Input.Path != "" {
		merged.Input.Path = env.Input.Path
	}
	if env.Input.Sheet != "" {
		merged.Input.Sheet = env.Input.Sheet
	}
	if env.Output.Dir != "" && env.Output.Dir != "data/processed" {
		merged.Output.Dir = env.Output.Dir
	}
	if merged.Output.Dir == "" {
		merged.Output.Dir = env.Output.Dir
	}
	if env.Cleaning.DayFirst {
		merged.Cleaning.DayFirst = true
	}
	if env.Cleaning.StripCurrency {
		merged.Cleaning.StripCurrency = true
	}
	if env.Dimension.DateBufferMonths != 6 {
		merged.Dimension.DateBufferMonths = env.Dimension.DateBufferMonths
	}
	if merged.Dimension.DateBufferMonths == 0 {
		merged.Dimension.DateBufferMonths = 6
	}
	if env.Warehouse.Path != "" {
		merged.Warehouse.Path = env.Warehouse.Path
	}
	if env.Logging.Level != "" && env.Logging.Level != "info" {
		merged.Logging.Level = env.Logging.Level
	}
	if merged.Logging.Level == "" {
		merged.Logging.Level = env.Logging.Level
	}
	if merged.Logging.Format == "" {
		merged.Logging.Format = env.Logging.Format
	}
	if merged.Logging.Output == "" {
		merged.Logging.Output = env.Logging.Output
	}
	if merged.Logging.FilePath == "" {
		merged.Logging.FilePath = env.Logging.FilePath
	}
	return merged
}

// getConfigFilePath returns the path of the optional YAML config file.
func getConfigFilePath() string {
	if custom := os.Getenv("RETAIL_CONFIG_FILE"); custom != "" {
		return custom
	}
	return filepath.Join(".", "retailetl.yaml")
}
