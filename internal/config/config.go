package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken   string
	DatabaseURL     string
	ReportTime      string
	ReportInterval  time.Duration
	NavigationDelay time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// REPORT_TIME (HH:MM) schedules summaries once a day and takes precedence
// over REPORT_INTERVAL_HOURS; an explicit REPORT_INTERVAL_HOURS=0 turns the
// periodic summaries off.
func Load() (Config, error) {
	cfg := Config{
		TelegramToken:   strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ReportTime:      strings.TrimSpace(os.Getenv("REPORT_TIME")),
		NavigationDelay: parseDelay(strings.TrimSpace(os.Getenv("NAV_DELAY_MS"))),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "todolist.db"
	}

	interval, set := parseInterval(strings.TrimSpace(os.Getenv("REPORT_INTERVAL_HOURS")))
	cfg.ReportInterval = interval
	if !set {
		cfg.ReportInterval = 5 * time.Hour
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

// parseInterval reads the summary interval in hours. The bool reports
// whether the variable carried a usable value: unset or garbage falls back
// to the default, while an explicit 0 is kept and disables the job.
func parseInterval(raw string) (time.Duration, bool) {
	if raw == "" {
		return 0, false
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours < 0 {
		return 0, false
	}
	return hours, true
}

// parseDelay reads the post-signin pause in milliseconds. Unset means the
// default 1 second; an explicit 0 disables the pause.
func parseDelay(raw string) time.Duration {
	if raw == "" {
		return time.Second
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return time.Second
	}
	return time.Duration(ms) * time.Millisecond
}
