package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		Env       string `yaml:"env"`
		BaseURL   string `yaml:"base_url"`   // public base URL for payment callbacks
		PublicDir string `yaml:"public_dir"` // static HTML directory, empty disables
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Redis struct {
		URL      string `yaml:"url"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
	} `yaml:"redis"`

	RateLimit struct {
		Requests      int `yaml:"requests"`
		WindowSeconds int `yaml:"window_seconds"`
	} `yaml:"rate_limit"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	SSLCommerz struct {
		StoreID       string `yaml:"store_id"`
		StorePassword string `yaml:"store_password"`
		Sandbox       bool   `yaml:"sandbox"`
		ValidateIPN   bool   `yaml:"validate_ipn"`
	} `yaml:"sslcommerz"`

	Payment struct {
		StalePendingHours int `yaml:"stale_pending_hours"`
	} `yaml:"payment"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml (or CONFIG_PATH) and then applies
// environment overrides, so deployments can run without a file at all.
// It returns an error instead of exiting so tests can exercise failures.
func LoadConfig() error {
	cfg := &Config{}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		decodeErr := decoder.Decode(cfg)
		f.Close()
		if decodeErr != nil {
			return fmt.Errorf("parse config file %s: %w", configPath, decodeErr)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *Config {
	return AppConfig
}

// Validate fails closed: a deployment without a JWT secret or database DSN
// must not start. Hardcoded fallback secrets are exactly the defect this
// service is not allowed to reproduce.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET is required and has no default")
	}
	if c.Database.DSN == "" {
		return errors.New("config: DATABASE_URL is required")
	}
	if c.SSLCommerz.StoreID == "" || c.SSLCommerz.StorePassword == "" {
		return errors.New("config: SSLCOMMERZ_STORE_ID and SSLCOMMERZ_STORE_PASSWORD are required")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.BaseURL, "BASE_URL")
	setString(&cfg.Server.PublicDir, "PUBLIC_DIR")

	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setInt(&cfg.JWT.TTLHours, "JWT_TTL_HOURS")

	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	setInt(&cfg.RateLimit.Requests, "RATE_LIMIT_REQUESTS")
	setInt(&cfg.RateLimit.WindowSeconds, "RATE_LIMIT_WINDOW_SECONDS")
	setInt(&cfg.Payment.StalePendingHours, "PAYMENT_STALE_PENDING_HOURS")

	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUser, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "EMAIL_FROM")
	setString(&cfg.Email.FromName, "EMAIL_FROM_NAME")

	setString(&cfg.SSLCommerz.StoreID, "SSLCOMMERZ_STORE_ID")
	setString(&cfg.SSLCommerz.StorePassword, "SSLCOMMERZ_STORE_PASSWORD")
	setBool(&cfg.SSLCommerz.Sandbox, "SSLCOMMERZ_SANDBOX")
	setBool(&cfg.SSLCommerz.ValidateIPN, "SSLCOMMERZ_VALIDATE_IPN")

	setString(&cfg.FirstAdminEmail, "FIRST_ADMIN_EMAIL")
	setString(&cfg.FirstAdminPassword, "FIRST_ADMIN_PASSWORD")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 24
	}
	if cfg.RateLimit.Requests == 0 {
		cfg.RateLimit.Requests = 20
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	if cfg.Payment.StalePendingHours == 0 {
		cfg.Payment.StalePendingHours = 24
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
