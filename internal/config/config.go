package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Inertia InertiaConfig `mapstructure:"inertia"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	CSRF    CSRFConfig    `mapstructure:"csrf"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// InertiaConfig holds the response engine settings
type InertiaConfig struct {
	// RootID is the id of the element the client adapter mounts on.
	RootID string `mapstructure:"root_id"`
	// Template is an optional path to a custom HTML shell containing the
	// {page} and {csrf} placeholders.
	Template string `mapstructure:"template"`
	// JSONFallback serves raw props as JSON to non-Inertia clients that
	// ask for application/json.
	JSONFallback bool `mapstructure:"json_fallback"`
}

// AssetsConfig holds frontend asset settings
type AssetsConfig struct {
	// Manifest is the path of the built Vite manifest; its content hash
	// becomes the asset version.
	Manifest string `mapstructure:"manifest"`
	// EntryPoint is the client entry module path.
	EntryPoint string `mapstructure:"entry_point"`
	// DevServer is the Vite dev server base URL.
	DevServer string `mapstructure:"dev_server"`
	// RefreshSchedule re-hashes the manifest on a cron schedule when
	// filesystem notifications are unavailable.
	RefreshSchedule string `mapstructure:"refresh_schedule"`
}

// CSRFConfig holds CSRF token settings
type CSRFConfig struct {
	Secret       string        `mapstructure:"secret"`
	CookieName   string        `mapstructure:"cookie_name"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	Issuer       string        `mapstructure:"issuer"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file details
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ferro/")

	// Set environment variable prefix
	v.SetEnvPrefix("FERRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "ferro")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", true)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	// Inertia defaults
	v.SetDefault("inertia.root_id", "app")
	v.SetDefault("inertia.template", "")
	v.SetDefault("inertia.json_fallback", false)

	// Assets defaults
	v.SetDefault("assets.manifest", "./public/build/manifest.json")
	v.SetDefault("assets.entry_point", "/assets/main.js")
	v.SetDefault("assets.dev_server", "http://localhost:5173")
	v.SetDefault("assets.refresh_schedule", "")

	// CSRF defaults
	v.SetDefault("csrf.cookie_name", "ferro_csrf")
	v.SetDefault("csrf.token_ttl", 2*time.Hour)
	v.SetDefault("csrf.issuer", "ferro")
	v.SetDefault("csrf.cookie_secure", false)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.CSRF.Secret == "" {
		return fmt.Errorf("csrf secret is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.CSRF.TokenTTL <= 0 {
		return fmt.Errorf("csrf token ttl must be positive")
	}
	return nil
}

// IsDevelopment reports whether the app serves assets from the dev server.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment != "production"
}
