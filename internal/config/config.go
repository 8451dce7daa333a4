package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token" validate:"required"`
	} `yaml:"telegram"`
	Feed struct {
		BaseURL    string        `yaml:"base_url" default:"https://nepalstock.onrender.com" validate:"required,url"`
		MaxSymbols int           `yaml:"max_symbols" default:"10" validate:"gt=0"`
		Retries    int           `yaml:"retries" default:"3" validate:"gt=0"`
		RetryDelay time.Duration `yaml:"retry_delay" default:"5s"`
		Timeout    time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"feed"`
	News struct {
		URL      string        `yaml:"url" default:"https://www.sharesansar.com/category/latest" validate:"required,url"`
		Selector string        `yaml:"selector" default:"h5.mb-0 a"`
		Timeout  time.Duration `yaml:"timeout" default:"20s"`
	} `yaml:"news"`
	Session struct {
		Days     []string `yaml:"days" default:"[\"sunday\", \"monday\", \"tuesday\", \"wednesday\", \"thursday\"]"`
		Open     string   `yaml:"open" default:"11:00"`
		Close    string   `yaml:"close" default:"15:00"`
		Timezone string   `yaml:"timezone" default:"Asia/Kathmandu"`
	} `yaml:"session"`
	Scheduler struct {
		PollIntervalOpen   time.Duration `yaml:"poll_interval_open" default:"5m"`
		PollIntervalClosed time.Duration `yaml:"poll_interval_closed" default:"30m"`
		DigestCron         string        `yaml:"digest_cron" default:"0 15 15 * * 0-4"`
		AutoStart          bool          `yaml:"auto_start"`
	} `yaml:"scheduler"`
	Store struct {
		SQLitePath string `yaml:"sqlite_path" default:"data/nepse_sentinel.db"`
	} `yaml:"store"`
	Server struct {
		Addr string `yaml:"addr"` // empty disables the ops server
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then fills defaults and applies
// environment variable overrides. A missing file is not an error; the
// defaults describe a working setup short of the bot token.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("FEED_BASE_URL"); v != "" {
		cfg.Feed.BaseURL = v
	}
	if v := os.Getenv("NEWS_URL"); v != "" {
		cfg.News.URL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MONITOR_ON_START"); v != "" {
		cfg.Scheduler.AutoStart = v == "true"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and well-formed.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := Weekdays(c.Session.Days); err != nil {
		return err
	}
	return nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Weekdays maps configured day names to time.Weekday values.
func Weekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("session: unknown weekday %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}
