// Package config loads innkeep settings from .innkeep.yaml and
// INNKEEP_* environment variables. Flags override config values;
// config values override the built-in defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the tunables for the agenda pipeline and the watch loop
type Config struct {
	// PageSize is how many agenda items each "load more" reveals
	PageSize int
	// BufferDays is how close the calendar viewport may get to a fetch
	// window edge before more data is requested
	BufferDays int
	// ExpansionDays is how far the fetch window grows per request
	ExpansionDays int
	// WeekStart is the weekday "this week" begins on
	WeekStart time.Weekday
	// PollInterval is how often the watch command re-queries
	PollInterval time.Duration
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		PageSize:      20,
		BufferDays:    30,
		ExpansionDays: 90,
		WeekStart:     time.Monday,
		PollInterval:  30 * time.Second,
	}
}

// Load reads configuration, looking for .innkeep.yaml in the current
// directory and the home directory. A missing config file is not an
// error; a malformed one is.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("page_size", 20)
	v.SetDefault("buffer_days", 30)
	v.SetDefault("expansion_days", 90)
	v.SetDefault("week_start", "monday")
	v.SetDefault("poll_interval", "30s")

	v.SetConfigName(".innkeep") // .yaml is implicit
	v.SetEnvPrefix("INNKEEP")
	v.AutomaticEnv()
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Config{
		PageSize:      v.GetInt("page_size"),
		BufferDays:    v.GetInt("buffer_days"),
		ExpansionDays: v.GetInt("expansion_days"),
		PollInterval:  v.GetDuration("poll_interval"),
	}

	weekStart, err := parseWeekday(v.GetString("week_start"))
	if err != nil {
		return Config{}, err
	}
	cfg.WeekStart = weekStart

	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.BufferDays <= 0 {
		cfg.BufferDays = 30
	}
	if cfg.ExpansionDays <= 0 {
		cfg.ExpansionDays = 90
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}

	return cfg, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday, nil
	case "monday", "":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return time.Monday, fmt.Errorf("invalid week_start %q", s)
	}
}
