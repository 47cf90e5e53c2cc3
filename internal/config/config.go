package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram Telegram `yaml:"telegram"`
	HTTP     HTTP     `yaml:"http"`
	Sources  Sources  `yaml:"sources"`
	Browser  Browser  `yaml:"browser"`
	Breaker  Breaker  `yaml:"breaker"`
	Schedule Schedule `yaml:"schedule"`
	Metrics  Metrics  `yaml:"metrics"`
	Log      Log      `yaml:"log"`
}

type Telegram struct {
	BotToken string `yaml:"bot_token" validate:"required"`
	ChatID   string `yaml:"chat_id" validate:"required"`
	APIBase  string `yaml:"api_base" default:"https://api.telegram.org" validate:"url"`
	// Reports are written in legacy Markdown.
	ParseMode string `yaml:"parse_mode" default:"Markdown" validate:"oneof=Markdown"`
	Retries   int    `yaml:"retries" default:"2" validate:"gte=0,lte=10"`
}

type HTTP struct {
	Timeout       time.Duration `yaml:"timeout" default:"15s" validate:"gt=0"`
	UserAgent     string        `yaml:"user_agent" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
	Proxy         string        `yaml:"proxy" validate:"omitempty,url"`
	RatePerSecond float64       `yaml:"rate_per_second" default:"0.5" validate:"gt=0"`
	Burst         int           `yaml:"burst" default:"1" validate:"gte=1"`
}

// Sources lists providers per indicator in priority order, plus upstream URLs.
type Sources struct {
	Index        []string `yaml:"index" default:"[\"nse\",\"yahoo\",\"moneycontrol\"]" validate:"min=1,dive,oneof=nse yahoo moneycontrol"`
	Volatility   []string `yaml:"volatility" default:"[\"nse\",\"yahoo\"]" validate:"min=1,dive,oneof=nse yahoo"`
	Sentiment    []string `yaml:"sentiment" default:"[\"tickertape\",\"goodreturns\"]" validate:"min=1,dive,oneof=tickertape goodreturns"`
	NSEURL       string   `yaml:"nse_url" default:"https://www.nseindia.com/api/allIndices" validate:"url"`
	YahooURL     string   `yaml:"yahoo_url" default:"https://query1.finance.yahoo.com/v8/finance/chart" validate:"url"`
	IndexSymbol  string   `yaml:"index_symbol" default:"^NSEI"`
	VIXSymbol    string   `yaml:"vix_symbol" default:"^INDIAVIX"`
	Moneycontrol string   `yaml:"moneycontrol_url" default:"https://www.moneycontrol.com/indian-indices/nifty-50-9.html" validate:"url"`
	Tickertape   string   `yaml:"tickertape_url" default:"https://www.tickertape.in/market-mood-index" validate:"url"`
	GoodReturns  string   `yaml:"goodreturns_url" default:"https://www.goodreturns.in/market-mood-index.html" validate:"url"`
}

// Browser configures the headless Chrome used for script-rendered pages.
type Browser struct {
	Enabled  bool          `yaml:"enabled" default:"true"`
	Headless bool          `yaml:"headless" default:"true"`
	ExecPath string        `yaml:"exec_path"`
	Timeout  time.Duration `yaml:"timeout" default:"20s" validate:"gt=0"`
}

type Breaker struct {
	MaxFailures uint32        `yaml:"max_failures" default:"3" validate:"gte=1"`
	OpenTimeout time.Duration `yaml:"open_timeout" default:"10m" validate:"gt=0"`
}

type Schedule struct {
	Cron     string `yaml:"cron" default:"0 30 9 * * 1-5"`
	Timezone string `yaml:"timezone" default:"Asia/Kolkata"`
}

type Metrics struct {
	PushgatewayURL string `yaml:"pushgateway_url" validate:"omitempty,url"`
	Job            string `yaml:"job" default:"market_pulse"`
}

type Log struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"console" validate:"oneof=console json"`
}

// Load applies struct defaults, then the YAML file (a missing file is not an
// error), then environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.HTTP.Proxy = v
	}
	if v := os.Getenv("PULSE_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("PUSHGATEWAY_URL"); v != "" {
		cfg.Metrics.PushgatewayURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
