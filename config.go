package tradehub

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config carries every tunable of the hub. It is built once by the binary
// and handed to each component at construction; nothing reads it globally.
type Config struct {
	DataDir  string `yaml:"data_dir" env:"VT_DATA_DIR" env-default:"data"`
	LogDir   string `yaml:"log_dir" env:"VT_LOG_DIR" env-default:"logs"`
	LogLevel string `yaml:"log_level" env:"VT_LOG_LEVEL" env-default:"info"`

	// BaseCurrency is the cash currency: the pivot of all conversions and
	// the wallet all trades settle against.
	BaseCurrency string `yaml:"base_currency" env:"VT_BASE_CURRENCY" env-default:"USD"`

	// RatesTTLSeconds is the maximum snapshot age conversions accept. The
	// default tracks the scheduler interval so a running scheduler keeps
	// rates warm.
	RatesTTLSeconds       int `yaml:"rates_ttl_seconds" env:"VT_RATES_TTL_SECONDS" env-default:"300"`
	UpdateIntervalSeconds int `yaml:"update_interval_seconds" env:"VT_UPDATE_INTERVAL_SECONDS" env-default:"300"`
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" env:"VT_REQUEST_TIMEOUT_SECONDS" env-default:"10"`

	CoinGecko struct {
		URL    string `yaml:"url" env:"VT_COINGECKO_URL" env-default:"https://api.coingecko.com/api/v3/simple/price"`
		APIKey string `yaml:"api_key" env:"COINGECKO_API_KEY"`
	} `yaml:"coingecko"`

	ExchangeRate struct {
		URL    string `yaml:"url" env:"VT_EXCHANGERATE_URL" env-default:"https://v6.exchangerate-api.com/v6"`
		APIKey string `yaml:"api_key" env:"EXCHANGERATE_API_KEY"`
	} `yaml:"exchangerate"`
}

// LoadConfig reads the YAML file when it exists and applies environment
// overrides on top; with no file the environment and defaults alone apply.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("reading config %q: %w", path, err)
			}
			return cfg, cfg.validate()
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config %q: %w", path, err)
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading config from environment: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if _, err := Resolve(c.BaseCurrency); err != nil {
		return fmt.Errorf("base_currency: %w", err)
	}
	if c.RatesTTLSeconds <= 0 {
		return fmt.Errorf("rates_ttl_seconds must be positive, got %d", c.RatesTTLSeconds)
	}
	if c.UpdateIntervalSeconds <= 0 {
		return fmt.Errorf("update_interval_seconds must be positive, got %d", c.UpdateIntervalSeconds)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive, got %d", c.RequestTimeoutSeconds)
	}
	return nil
}

// Data file locations, all under DataDir.

func (c Config) UsersFile() string      { return filepath.Join(c.DataDir, "users.json") }
func (c Config) PortfoliosFile() string { return filepath.Join(c.DataDir, "portfolios.json") }
func (c Config) RatesFile() string      { return filepath.Join(c.DataDir, "rates.json") }
func (c Config) HistoryFile() string    { return filepath.Join(c.DataDir, "exchange_rates.json") }
func (c Config) SessionFile() string    { return filepath.Join(c.DataDir, "session.json") }

func (c Config) RatesTTL() time.Duration       { return time.Duration(c.RatesTTLSeconds) * time.Second }
func (c Config) UpdateInterval() time.Duration { return time.Duration(c.UpdateIntervalSeconds) * time.Second }
func (c Config) RequestTimeout() time.Duration { return time.Duration(c.RequestTimeoutSeconds) * time.Second }
