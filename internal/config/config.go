package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	APIBaseURL      string        `mapstructure:"API_BASE_URL"`
	BloodBankAPIURL string        `mapstructure:"BLOOD_BANK_API_URL"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	TokenStore      string        `mapstructure:"TOKEN_STORE"`
	RedisURL        string        `mapstructure:"REDIS_URL"`
	TokenKeyPrefix  string        `mapstructure:"TOKEN_KEY_PREFIX"`
	BreakerEnabled  bool          `mapstructure:"BREAKER_ENABLED"`
	BreakerFailures uint32        `mapstructure:"BREAKER_FAILURES"`
	GatewayPort     string        `mapstructure:"GATEWAY_PORT"`
	CORSOrigins     []string      `mapstructure:"CORS_ORIGINS"`
	UserID          string        `mapstructure:"USER_ID"`
	AdminID         string        `mapstructure:"ADMIN_ID"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("TOKEN_STORE", "memory")
	v.SetDefault("TOKEN_KEY_PREFIX", "hms:session:")
	v.SetDefault("BREAKER_ENABLED", false)
	v.SetDefault("BREAKER_FAILURES", 5)
	v.SetDefault("GATEWAY_PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("API_BASE_URL")
	v.BindEnv("BLOOD_BANK_API_URL")
	v.BindEnv("REQUEST_TIMEOUT")
	v.BindEnv("TOKEN_STORE")
	v.BindEnv("REDIS_URL")
	v.BindEnv("TOKEN_KEY_PREFIX")
	v.BindEnv("BREAKER_ENABLED")
	v.BindEnv("BREAKER_FAILURES")
	v.BindEnv("GATEWAY_PORT")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("USER_ID")
	v.BindEnv("ADMIN_ID")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) <= 1 {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}
	if cfg.BloodBankAPIURL == "" {
		cfg.BloodBankAPIURL = cfg.APIBaseURL
	}

	if cfg.IsDev() && strings.HasPrefix(cfg.APIBaseURL, "http://") && !isLocal(cfg.APIBaseURL) {
		log.Println("WARNING: API_BASE_URL uses plain http to a non-local host; bearer tokens are sent unencrypted.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the client is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration can run. In production the backend
// must be reached over https.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"API_BASE_URL":       c.APIBaseURL,
		"BLOOD_BANK_API_URL": c.BloodBankAPIURL,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s is not a valid url: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s scheme must be http or https, got %q", name, u.Scheme)
		}
		if c.IsProduction() && u.Scheme != "https" {
			return fmt.Errorf("%s must use https in production", name)
		}
	}

	switch c.TokenStore {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when TOKEN_STORE is \"redis\"")
		}
	default:
		return fmt.Errorf("TOKEN_STORE must be \"memory\" or \"redis\", got %q", c.TokenStore)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

func isLocal(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	h := u.Hostname()
	return h == "localhost" || h == "127.0.0.1" || h == "::1"
}
