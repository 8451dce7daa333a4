package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	path := writeConfig(t, "telegram:\n  bot_token: \"123:abc\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Feed.BaseURL != "https://nepalstock.onrender.com" {
		t.Errorf("unexpected feed base URL: %q", cfg.Feed.BaseURL)
	}
	if cfg.Feed.MaxSymbols != 10 || cfg.Feed.Retries != 3 || cfg.Feed.RetryDelay != 5*time.Second {
		t.Errorf("unexpected feed defaults: %+v", cfg.Feed)
	}
	if cfg.Scheduler.PollIntervalOpen != 5*time.Minute || cfg.Scheduler.PollIntervalClosed != 30*time.Minute {
		t.Errorf("unexpected poll intervals: %+v", cfg.Scheduler)
	}
	if len(cfg.Session.Days) != 5 || cfg.Session.Days[0] != "sunday" || cfg.Session.Days[4] != "thursday" {
		t.Errorf("unexpected session days: %v", cfg.Session.Days)
	}
	if cfg.Session.Open != "11:00" || cfg.Session.Close != "15:00" || cfg.Session.Timezone != "Asia/Kathmandu" {
		t.Errorf("unexpected session defaults: %+v", cfg.Session)
	}
	if cfg.News.Selector != "h5.mb-0 a" {
		t.Errorf("unexpected news selector: %q", cfg.News.Selector)
	}
	if cfg.Store.SQLitePath != "data/nepse_sentinel.db" {
		t.Errorf("unexpected store path: %q", cfg.Store.SQLitePath)
	}
	if cfg.Server.Addr != "" {
		t.Errorf("ops server should be disabled by default, got %q", cfg.Server.Addr)
	}
	if cfg.Log.Level != "info" || cfg.Scheduler.AutoStart {
		t.Errorf("unexpected runtime defaults: log=%+v auto_start=%v", cfg.Log, cfg.Scheduler.AutoStart)
	}
}

func TestLoad_FileValuesSurviveDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	path := writeConfig(t, `
telegram:
  bot_token: "123:abc"
feed:
  max_symbols: 5
  retry_delay: 1s
session:
  open: "10:30"
  days: ["sunday", "monday"]
scheduler:
  poll_interval_open: 2m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Feed.MaxSymbols != 5 || cfg.Feed.RetryDelay != time.Second {
		t.Errorf("file values overwritten: %+v", cfg.Feed)
	}
	if cfg.Session.Open != "10:30" || len(cfg.Session.Days) != 2 {
		t.Errorf("file values overwritten: %+v", cfg.Session)
	}
	if cfg.Scheduler.PollIntervalOpen != 2*time.Minute {
		t.Errorf("file values overwritten: %+v", cfg.Scheduler)
	}
	// Untouched fields still get defaults.
	if cfg.Feed.Retries != 3 || cfg.Session.Close != "15:00" {
		t.Errorf("defaults not applied alongside file values: %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env:token")
	t.Setenv("FEED_BASE_URL", "https://example.com")
	t.Setenv("MONITOR_ON_START", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.BotToken != "env:token" {
		t.Errorf("expected env token, got %q", cfg.Telegram.BotToken)
	}
	if cfg.Feed.BaseURL != "https://example.com" {
		t.Errorf("expected env base URL, got %q", cfg.Feed.BaseURL)
	}
	if !cfg.Scheduler.AutoStart {
		t.Error("expected auto start from env")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without bot token")
	}
}

func TestValidate_UnknownWeekday(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	path := writeConfig(t, `
telegram:
  bot_token: "123:abc"
session:
  days: ["sunday", "someday"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown weekday")
	}
}

func TestLoad_BadYaml(t *testing.T) {
	path := writeConfig(t, "telegram: [\n")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestWeekdays(t *testing.T) {
	days, err := Weekdays([]string{" Sunday ", "thursday"})
	if err != nil {
		t.Fatalf("Weekdays: %v", err)
	}
	if days[0] != time.Sunday || days[1] != time.Thursday {
		t.Errorf("unexpected mapping: %v", days)
	}
	if _, err := Weekdays([]string{"holiday"}); err == nil {
		t.Error("expected error for unknown name")
	}
}
