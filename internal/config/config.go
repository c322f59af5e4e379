package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL    = "https://secure.paytmpayments.com"
	DefaultPort       = "8080"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second

	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

var (
	ErrMissingMerchantID = errors.New("PAYTM_MID is required")
	ErrMissingSecret     = errors.New("PAYTM_KEY_SECRET is required")
	ErrInvalidTransport  = errors.New("MCP_TRANSPORT must be http or stdio")
)

// Credentials identify the merchant towards the gateway.
type Credentials struct {
	MerchantID    string
	SigningSecret string
}

// String never prints the signing secret.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{MerchantID:%s SigningSecret:***}", c.MerchantID)
}

type GatewayConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	RateLimit   float64       `yaml:"rate_limit"` // outbound requests per second, 0 disables
	RefundRetry bool          `yaml:"refund_retry"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	Transport      string   `yaml:"transport"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	JWTSecret      string   `yaml:"-"`
	APIKeyHash     string   `yaml:"-"`
}

type Config struct {
	AppEnv      string        `yaml:"app_env"`
	Credentials Credentials   `yaml:"-"`
	Gateway     GatewayConfig `yaml:"gateway"`
	Server      ServerConfig  `yaml:"server"`
}

// Load reads .env (if present), the optional CONFIG_FILE yaml overlay and the
// environment, in that order of increasing precedence.
func Load() (*Config, error) {
	LoadDotEnv()

	cfg := &Config{
		Gateway: GatewayConfig{
			BaseURL:    DefaultBaseURL,
			Timeout:    DefaultTimeout,
			MaxRetries: DefaultMaxRetries,
			RetryDelay: DefaultRetryDelay,
		},
		Server: ServerConfig{
			Port:           DefaultPort,
			Transport:      TransportHTTP,
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv merges a .env file from the working directory into the
// environment, if one exists. Variables already set win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func applyEnv(cfg *Config) error {
	cfg.Credentials = Credentials{
		MerchantID:    strings.TrimSpace(os.Getenv("PAYTM_MID")),
		SigningSecret: os.Getenv("PAYTM_KEY_SECRET"),
	}
	cfg.Server.JWTSecret = os.Getenv("MCP_JWT_SECRET")
	cfg.Server.APIKeyHash = os.Getenv("MCP_API_KEY_HASH")

	setString(&cfg.AppEnv, "APP_ENV")
	setString(&cfg.Gateway.BaseURL, "PAYTM_BASE_URL")
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Transport, "MCP_TRANSPORT")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	var err error
	if cfg.Gateway.Timeout, err = durationEnv("GATEWAY_TIMEOUT", cfg.Gateway.Timeout); err != nil {
		return err
	}
	if cfg.Gateway.RetryDelay, err = durationEnv("GATEWAY_RETRY_DELAY", cfg.Gateway.RetryDelay); err != nil {
		return err
	}
	if cfg.Gateway.MaxRetries, err = intEnv("GATEWAY_MAX_RETRIES", cfg.Gateway.MaxRetries); err != nil {
		return err
	}
	if cfg.Gateway.RateLimit, err = floatEnv("GATEWAY_RATE_LIMIT", cfg.Gateway.RateLimit); err != nil {
		return err
	}
	if cfg.Gateway.RefundRetry, err = boolEnv("PAYTM_REFUND_RETRY", cfg.Gateway.RefundRetry); err != nil {
		return err
	}
	if cfg.Server.RateLimitRPS, err = floatEnv("RATE_LIMIT_RPS", cfg.Server.RateLimitRPS); err != nil {
		return err
	}
	if cfg.Server.RateLimitBurst, err = intEnv("RATE_LIMIT_BURST", cfg.Server.RateLimitBurst); err != nil {
		return err
	}
	return nil
}

// Validate checks the settings that make the process unusable when absent.
func (c *Config) Validate() error {
	if c.Credentials.MerchantID == "" {
		return ErrMissingMerchantID
	}
	if c.Credentials.SigningSecret == "" {
		return ErrMissingSecret
	}
	if c.Server.Transport != TransportHTTP && c.Server.Transport != TransportStdio {
		return ErrInvalidTransport
	}
	if c.Gateway.MaxRetries < 1 {
		c.Gateway.MaxRetries = 1
	}
	if c.Gateway.Timeout <= 0 {
		c.Gateway.Timeout = DefaultTimeout
	}
	c.Gateway.BaseURL = strings.TrimRight(c.Gateway.BaseURL, "/")
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
