package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CINEBROWSE_TMDB_TOKEN
const EnvPrefix = "CINEBROWSE"

// PlaceholderToken is the token value shipped in the sample config
const PlaceholderToken = "YOUR_TMDB_BEARER_TOKEN_HERE"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load loads the configuration from configPath, or from the standard locations when it is empty.
// With no explicit path a missing config file is not an error, so environment-only setups work.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cinebrowse"))
		}

		v.AddConfigPath("/etc/cinebrowse/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.token", "")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p/w500")
	v.SetDefault("tmdb.placeholder_url", "https://via.placeholder.com/500x750.png?text=No+Image")
	v.SetDefault("tmdb.language", "")
	v.SetDefault("tmdb.timeout", 30*time.Second)

	// Filter defaults
	v.SetDefault("filter.default", "")

	// Display defaults
	v.SetDefault("display.show_details", false)
	v.SetDefault("display.limit", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size_mb", 10)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age_days", 28)
	v.SetDefault("logging.file.compress", false)
}

// Validate checks if the configuration is valid
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.TMDB.Token) == "" {
		return fmt.Errorf("tmdb.token is required")
	}
	if cfg.TMDB.Token == PlaceholderToken {
		return fmt.Errorf("tmdb.token must be set to a valid bearer token")
	}

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%s: failed %q check (value %v): %w", fieldPath(fe.Namespace()), fe.Tag(), fe.Value(), err)
		}
		return err
	}

	for name, preset := range cfg.Filter.Presets {
		if strings.TrimSpace(preset.Expression) == "" {
			return fmt.Errorf("filter.presets.%s.expression must not be empty", name)
		}
	}

	return nil
}

// fieldPath turns "Config.TMDB.BaseURL" into "TMDB.BaseURL"
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}
