package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"PriceChart/internal/series"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	HTTP struct {
		Port       int    `yaml:"port"`
		CORSOrigin string `yaml:"cors_origin"`
	} `yaml:"http"`
	DataSource struct {
		Provider   string   `yaml:"provider"` // "yahoo" or "static"
		Symbols    []string `yaml:"symbols"`
		Range      string   `yaml:"range"`
		StaticFile string   `yaml:"static_file"` // JSON fixture for the static provider
	} `yaml:"data_source"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		RunOnStart  bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Chart struct {
		DefaultWindow   string  `yaml:"default_window"`
		TickCount       int     `yaml:"tick_count"`
		PriceInterval   float64 `yaml:"price_interval"` // 0 picks one from the max price
		DuplicatePolicy string  `yaml:"duplicate_policy"`
	} `yaml:"chart"`
	LogLevel string `yaml:"log_level"`
	Proxy    string `yaml:"proxy"`
}

// Load reads .env and the YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
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

	// Environment variable overrides
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("HTTP_PORT: %w", err)
		}
		cfg.HTTP.Port = port
	}
	if v := os.Getenv("CORS_ALLOW_ORIGIN"); v != "" {
		cfg.HTTP.CORSOrigin = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.DataSource.Symbols = splitList(v)
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("STATIC_FILE"); v != "" {
		cfg.DataSource.StaticFile = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		cfg.Schedule.RunOnStart = v == "true" || v == "1"
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = []string{"SPX500"}
	}
	if cfg.DataSource.Range == "" {
		cfg.DataSource.Range = "5y"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}
	if cfg.Chart.DefaultWindow == "" {
		cfg.Chart.DefaultWindow = "1y"
	}
	if cfg.Chart.TickCount == 0 {
		cfg.Chart.TickCount = series.DefaultTickCount
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	switch c.DataSource.Provider {
	case "yahoo":
	case "static":
		if c.DataSource.StaticFile == "" {
			return fmt.Errorf("data_source.static_file is required for the static provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q must be yahoo or static", c.DataSource.Provider)
	}
	for _, s := range c.DataSource.Symbols {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("data_source.symbols contains an empty symbol")
		}
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(c.Schedule.RefreshCron); err != nil {
		return fmt.Errorf("schedule.refresh_cron: %w", err)
	}
	if _, err := series.ParseWindow(c.Chart.DefaultWindow); err != nil {
		return fmt.Errorf("chart.default_window: %w", err)
	}
	if c.Chart.TickCount < 1 {
		return fmt.Errorf("chart.tick_count must be positive")
	}
	if c.Chart.PriceInterval < 0 {
		return fmt.Errorf("chart.price_interval must not be negative")
	}
	if _, err := series.ParseDuplicatePolicy(c.Chart.DuplicatePolicy); err != nil {
		return fmt.Errorf("chart.duplicate_policy: %w", err)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
