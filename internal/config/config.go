package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
	Activity ActivityConfig `mapstructure:"activity" validate:"required"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver is the database/sql driver name: "sqlite3" or "pgx".
	Driver       string `mapstructure:"driver" validate:"required,oneof=sqlite3 pgx"`
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}

// ScheduleConfig tunes the spaced-repetition ladder.
type ScheduleConfig struct {
	// Intervals is the ladder in seconds. Empty means the built-in ladder.
	// Rungs must fit a time.Duration.
	Intervals    []int64       `mapstructure:"intervals" validate:"omitempty,dive,gte=0,lte=9223372036"`
	WrongPolicy  string        `mapstructure:"wrong_policy" validate:"required,oneof=reset step_back"`
	StoreTimeout time.Duration `mapstructure:"store_timeout" validate:"gt=0"`
}

// ActivityConfig controls activity reporting.
type ActivityConfig struct {
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`
	Days     int    `mapstructure:"days" validate:"gte=1,lte=366"`
}

// ReminderConfig controls the periodic reminder threshold check.
type ReminderConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Thresholds    []int         `mapstructure:"thresholds" validate:"omitempty,dive,gt=0"`
	CheckInterval time.Duration `mapstructure:"check_interval" validate:"required_if=Enabled true"`
}

// Location resolves the configured activity time zone.
func (c ActivityConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid activity timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
