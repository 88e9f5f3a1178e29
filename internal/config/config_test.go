package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REPORT_TIME", "")
	t.Setenv("REPORT_INTERVAL_HOURS", "")
	t.Setenv("NAV_DELAY_MS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseURL != "todolist.db" {
		t.Fatalf("expected default db path, got %q", cfg.DatabaseURL)
	}
	if cfg.ReportInterval != 5*time.Hour {
		t.Fatalf("expected default interval, got %v", cfg.ReportInterval)
	}
	if cfg.NavigationDelay != time.Second {
		t.Fatalf("expected default nav delay, got %v", cfg.NavigationDelay)
	}
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without token")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("DATABASE_URL", "data/app.db")
	t.Setenv("REPORT_TIME", "08:30")
	t.Setenv("REPORT_INTERVAL_HOURS", "3")
	t.Setenv("NAV_DELAY_MS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseURL != "data/app.db" {
		t.Fatalf("expected override, got %q", cfg.DatabaseURL)
	}
	if cfg.ReportTime != "08:30" {
		t.Fatalf("expected report time, got %q", cfg.ReportTime)
	}
	if cfg.ReportInterval != 3*time.Hour {
		t.Fatalf("expected 3h, got %v", cfg.ReportInterval)
	}
	if cfg.NavigationDelay != 0 {
		t.Fatalf("explicit zero disables the delay, got %v", cfg.NavigationDelay)
	}
}

func TestLoadZeroIntervalDisablesReports(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("REPORT_INTERVAL_HOURS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ReportInterval != 0 {
		t.Fatalf("explicit zero disables the summaries, got %v", cfg.ReportInterval)
	}
}

func TestLoadBadNumbersFallBack(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("REPORT_INTERVAL_HOURS", "soon")
	t.Setenv("NAV_DELAY_MS", "-5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ReportInterval != 5*time.Hour {
		t.Fatalf("bad interval falls back to default, got %v", cfg.ReportInterval)
	}
	if cfg.NavigationDelay != time.Second {
		t.Fatalf("bad delay falls back to default, got %v", cfg.NavigationDelay)
	}
}
