package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL               string        `mapstructure:"shapes_base_url"`
	HelloPath             string        `mapstructure:"hello_path"`
	ShapePath             string        `mapstructure:"shape_path"`
	UserAgent             string        `mapstructure:"user_agent"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	ReportersFile  string `mapstructure:"reporters_file"`
	ReporterBuffer int    `mapstructure:"reporter_buffer"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "shapes-console")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("shapes_base_url", "https://shapes.approov.io")
	v.SetDefault("hello_path", "/v1/hello")
	v.SetDefault("shape_path", "/v1/shapes")
	v.SetDefault("user_agent", "shapes-console/1.0")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("reporters_file", "")
	v.SetDefault("reporter_buffer", 64)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid shapes_base_url %q (must be an absolute URL)", c.BaseURL)
	}

	c.HelloPath = ensureLeadingSlash(c.HelloPath)
	c.ShapePath = ensureLeadingSlash(c.ShapePath)
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	c.ReportersFile = strings.TrimSpace(c.ReportersFile)

	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second

	if c.ReporterBuffer <= 0 {
		return fmt.Errorf("invalid reporter_buffer (must be positive)")
	}
	return nil
}

// HelloURL returns the absolute hello endpoint URL.
func (c *Config) HelloURL() string { return c.BaseURL + c.HelloPath }

// ShapeURL returns the absolute shape endpoint URL.
func (c *Config) ShapeURL() string { return c.BaseURL + c.ShapePath }

func ensureLeadingSlash(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
