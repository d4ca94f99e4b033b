package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Display DisplayConfig `mapstructure:"display"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	Token          string        `mapstructure:"token" validate:"required"`
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	ImageBaseURL   string        `mapstructure:"image_base_url" validate:"required,url"`
	PlaceholderURL string        `mapstructure:"placeholder_url" validate:"required,url"`
	Language       string        `mapstructure:"language" validate:"omitempty,bcp47_language_tag"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// FilterConfig holds the default expression and named presets
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default"`
	Presets           map[string]PresetConfig `mapstructure:"presets" validate:"dive"`
}

// PresetConfig is a named filter expression
type PresetConfig struct {
	Expression  string `mapstructure:"expression" validate:"required"`
	Description string `mapstructure:"description"`
}

// DisplayConfig controls listing output
type DisplayConfig struct {
	ShowDetails bool `mapstructure:"show_details"`
	Limit       int  `mapstructure:"limit" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string        `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string        `mapstructure:"format" validate:"oneof=console json"`
	Color  bool          `mapstructure:"color"`
	File   LogFileConfig `mapstructure:"file"`
}

// LogFileConfig enables rotated file logging when Path is set
type LogFileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}
