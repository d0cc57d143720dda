package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// LEXICON_SERVER_PORT or LEXICON_REMINDER_THRESHOLDS.
const EnvPrefix = "LEXICON"

// Options tweak where Load looks for configuration.
type Options struct {
	// ConfigPaths are searched for config.yaml. Defaults to ".".
	ConfigPaths []string
	// DotEnvFile is loaded into the process environment before reading
	// variables. Defaults to ".env"; a missing file is not an error.
	DotEnvFile string
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(Options{})
}

// LoadWithOptions is Load with explicit search locations.
func LoadWithOptions(opts Options) (*Config, error) {
	if opts.DotEnvFile == "" {
		opts.DotEnvFile = ".env"
	}
	if len(opts.ConfigPaths) == 0 {
		opts.ConfigPaths = []string{"."}
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(opts.DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", opts.DotEnvFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.url", "file:lexicon.db?_foreign_keys=on")
	v.SetDefault("database.max_open_conns", 0)

	v.SetDefault("schedule.intervals", []int64{})
	v.SetDefault("schedule.wrong_policy", "reset")
	v.SetDefault("schedule.store_timeout", 5*time.Second)

	v.SetDefault("activity.timezone", "UTC")
	v.SetDefault("activity.days", 7)

	v.SetDefault("reminder.enabled", true)
	v.SetDefault("reminder.thresholds", []int{5, 10, 20})
	v.SetDefault("reminder.check_interval", 15*time.Minute)
}
