package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Exchange struct {
		BaseURL           string  `yaml:"base_url"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
	} `yaml:"exchange"`
	Scan struct {
		Interval       string `yaml:"interval"`
		Lookback       int    `yaml:"lookback"`
		RefreshSeconds int    `yaml:"refresh_seconds"`
		TopVolume      int    `yaml:"top_volume"`
		PriceDecimals  int    `yaml:"price_decimals"`
	} `yaml:"scan"`
	Strategy struct {
		MinLongPct  float64 `yaml:"min_long_pct"`
		MinShortPct float64 `yaml:"min_short_pct"`
		SLATRMult   float64 `yaml:"sl_atr_mult"`
		TPATRMult   float64 `yaml:"tp_atr_mult"`
		RRMin       float64 `yaml:"rr_min"`
	} `yaml:"strategy"`
	Ledger struct {
		PositionsFile string `yaml:"positions_file"`
		SQLitePath    string `yaml:"sqlite_path"`
	} `yaml:"ledger"`
	Log struct {
		Folder string `yaml:"folder"`
	} `yaml:"log"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		SummaryCron string `yaml:"summary_cron"`
		RerankCron  string `yaml:"rerank_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Seeded below zero so an explicit price_decimals: 0 survives defaulting.
	cfg.Scan.PriceDecimals = -1

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
	if v := os.Getenv("MEXC_BASE_URL"); v != "" {
		cfg.Exchange.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("POSITIONS_FILE"); v != "" {
		cfg.Ledger.PositionsFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Ledger.SQLitePath = v
	}
	if v := os.Getenv("LOG_FOLDER"); v != "" {
		cfg.Log.Folder = v
	}
	if v := os.Getenv("REFRESH_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.RefreshSeconds = n
		}
	}
	if v := os.Getenv("TOP_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.TopVolume = n
		}
	}

	// Defaults
	if cfg.Exchange.BaseURL == "" {
		cfg.Exchange.BaseURL = "https://contract.mexc.com"
	}
	if cfg.Exchange.RequestsPerSecond == 0 {
		cfg.Exchange.RequestsPerSecond = 8
	}
	if cfg.Scan.Interval == "" {
		cfg.Scan.Interval = "15m"
	}
	if cfg.Scan.Lookback == 0 {
		cfg.Scan.Lookback = 200
	}
	if cfg.Scan.RefreshSeconds == 0 {
		cfg.Scan.RefreshSeconds = 10
	}
	if cfg.Scan.TopVolume == 0 {
		cfg.Scan.TopVolume = 100
	}
	if cfg.Scan.PriceDecimals < 0 {
		cfg.Scan.PriceDecimals = 6
	}
	if cfg.Strategy.MinLongPct == 0 {
		cfg.Strategy.MinLongPct = 1.5
	}
	if cfg.Strategy.MinShortPct == 0 {
		cfg.Strategy.MinShortPct = 1.5
	}
	if cfg.Strategy.SLATRMult == 0 {
		cfg.Strategy.SLATRMult = 1.2
	}
	if cfg.Strategy.TPATRMult == 0 {
		cfg.Strategy.TPATRMult = 1.8
	}
	if cfg.Strategy.RRMin == 0 {
		cfg.Strategy.RRMin = 1.2
	}
	if cfg.Ledger.PositionsFile == "" {
		cfg.Ledger.PositionsFile = "positions.csv"
	}
	if cfg.Log.Folder == "" {
		cfg.Log.Folder = "logs"
	}
	if cfg.Schedule.SummaryCron == "" {
		cfg.Schedule.SummaryCron = "0 0 0 * * *"
	}
	if cfg.Schedule.RerankCron == "" {
		cfg.Schedule.RerankCron = "0 0 */6 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and sane.
func (c *Config) Validate() error {
	if c.Exchange.BaseURL == "" {
		return fmt.Errorf("exchange.base_url is required")
	}
	if c.Exchange.RequestsPerSecond <= 0 {
		return fmt.Errorf("exchange.requests_per_second must be positive")
	}
	if c.Scan.Lookback <= 0 {
		return fmt.Errorf("scan.lookback must be positive")
	}
	if c.Scan.RefreshSeconds <= 0 {
		return fmt.Errorf("scan.refresh_seconds must be positive")
	}
	if c.Scan.TopVolume <= 0 {
		return fmt.Errorf("scan.top_volume must be positive")
	}
	if c.Strategy.SLATRMult <= 0 || c.Strategy.TPATRMult <= 0 {
		return fmt.Errorf("strategy ATR multipliers must be positive")
	}
	if c.Strategy.RRMin <= 0 {
		return fmt.Errorf("strategy.rr_min must be positive")
	}
	return nil
}
