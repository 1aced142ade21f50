package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Backend    BackendConfig    `yaml:"backend"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Exports    ExportConfig     `yaml:"exports"`
	Google     GoogleConfig     `yaml:"google"`
	UI         UIConfig         `yaml:"ui"`
	Admins     []int64          `yaml:"admins"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Debug    bool   `yaml:"debug"`
}

// BackendConfig describes the platform REST API this console talks to.
// The token travels in a custom header (backend contract, not our choice).
type BackendConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Token          string        `yaml:"token"`
	TokenHeader    string        `yaml:"token_header"`
	Timeout        time.Duration `yaml:"timeout"`
	RateLimitRPS   float64       `yaml:"rate_limit_rps"`
	RateLimitBurst int           `yaml:"rate_limit_burst"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type GoogleConfig struct {
	CredentialsFile       string `yaml:"credentials_file"`
	BookingsSpreadsheetID string `yaml:"bookings_spreadsheet_id"`
}

// UIConfig carries per-screen page sizes. Defaults match the web dashboard.
type UIConfig struct {
	PostsPageSize    int `yaml:"posts_page_size"`
	BookingsPageSize int `yaml:"bookings_page_size"`
	FeedbackPageSize int `yaml:"feedback_page_size"`
	RateLimitMsgs    int `yaml:"rate_limit_messages"`
	RateLimitWindow  int `yaml:"rate_limit_window"`
}

func Load(configPath string) (*Config, error) {
	// .env необязателен: переменные могут прийти из окружения
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" || c.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		return errors.New("telegram bot token is required")
	}

	if c.Backend.BaseURL == "" {
		return errors.New("backend base_url is required")
	}

	if len(c.Admins) == 0 {
		return errors.New("at least one admin chat id is required")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Backend.TokenHeader == "" {
		c.Backend.TokenHeader = "x-access-token"
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 10 * time.Second
	}
	if c.Backend.RateLimitRPS == 0 {
		c.Backend.RateLimitRPS = 10
	}
	if c.Backend.RateLimitBurst == 0 {
		c.Backend.RateLimitBurst = 20
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}

	// UI defaults mirror the web dashboard page sizes
	if c.UI.PostsPageSize == 0 {
		c.UI.PostsPageSize = 9
	}
	if c.UI.BookingsPageSize == 0 {
		c.UI.BookingsPageSize = 10
	}
	if c.UI.FeedbackPageSize == 0 {
		c.UI.FeedbackPageSize = 8
	}
	if c.UI.RateLimitMsgs == 0 {
		c.UI.RateLimitMsgs = 20
	}
	if c.UI.RateLimitWindow == 0 {
		c.UI.RateLimitWindow = 60
	}
}
