package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full application configuration
type Config struct {
	Server   ServerConfig  `mapstructure:"server"`
	Database DBConfig      `mapstructure:"database"`
	Session  SessionConfig `mapstructure:"session"`
	Redis    RedisConfig   `mapstructure:"redis"`
	Quote    QuoteConfig   `mapstructure:"quote"`
	Log      LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	Env         string   `mapstructure:"env"`
	WebRoot     string   `mapstructure:"web_root"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DBConfig selects the relational driver and its pool settings
type DBConfig struct {
	Driver      string        `mapstructure:"driver"`
	URL         string        `mapstructure:"url"`
	Host        string        `mapstructure:"host"`
	Port        string        `mapstructure:"port"`
	User        string        `mapstructure:"user"`
	Password    string        `mapstructure:"password"`
	Name        string        `mapstructure:"name"`
	SSLMode     string        `mapstructure:"sslmode"`
	SQLitePath  string        `mapstructure:"sqlite_path"`
	MaxIdle     int           `mapstructure:"max_idle"`
	MaxOpen     int           `mapstructure:"max_open"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	Lifetime   time.Duration `mapstructure:"lifetime"`
	CookieName string        `mapstructure:"cookie_name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// QuoteConfig points at the market-data provider
type QuoteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

// envBindings maps config keys to the environment variables the deployment uses
var envBindings = map[string]string{
	"server.port":          "PORT",
	"server.env":           "APP_ENV",
	"server.web_root":      "WEB_ROOT",
	"server.cors_origins":  "CORS_ORIGINS",
	"database.driver":      "DB_DRIVER",
	"database.url":         "DATABASE_URL",
	"database.host":        "DB_HOST",
	"database.port":        "DB_PORT",
	"database.user":        "DB_USER",
	"database.password":    "DB_PASSWORD",
	"database.name":        "DB_NAME",
	"database.sslmode":     "DB_SSLMODE",
	"database.sqlite_path": "SQLITE_PATH",
	"session.secret":       "SECRET_KEY",
	"session.lifetime":     "SESSION_LIFETIME",
	"session.cookie_name":  "SESSION_COOKIE",
	"redis.addr":           "REDIS_ADDR",
	"redis.password":       "REDIS_PASSWORD",
	"redis.db":             "REDIS_DB",
	"quote.base_url":       "QUOTE_BASE_URL",
	"quote.timeout":        "QUOTE_TIMEOUT",
	"log.level":            "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.web_root", "web")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.driver", "")
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "database.db")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 100)
	v.SetDefault("database.max_lifetime", "5m")

	v.SetDefault("session.secret", "")
	v.SetDefault("session.lifetime", "24h")
	v.SetDefault("session.cookie_name", "session")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("quote.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("quote.timeout", "10s")

	v.SetDefault("log.level", "info")
}

// Load reads .env (optional), configs/config.yaml (optional) and the environment
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) normalize() {
	if c.Database.Driver == "" {
		if c.Database.URL != "" || c.Database.Host != "" {
			c.Database.Driver = "postgres"
		} else {
			c.Database.Driver = "sqlite"
		}
	}
	c.Database.Driver = strings.ToLower(c.Database.Driver)

	// CORS_ORIGINS arrives as one comma separated string from the environment
	var origins []string
	for _, o := range c.Server.CORSOrigins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.Server.CORSOrigins = origins

	if c.Session.Secret == "" && !c.IsProduction() {
		c.Session.Secret = "dev-session-secret-change-me"
	}
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Session.Secret == "" {
		return errors.New("SECRET_KEY is required in production")
	}
	if c.Session.Lifetime <= 0 {
		return fmt.Errorf("session lifetime must be positive, got %s", c.Session.Lifetime)
	}
	return nil
}
