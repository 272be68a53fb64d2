package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const devDeleteTokenSecret = "dev-only-delete-token-secret"

// Config is the whole application configuration.
type Config struct {
	AppEnv    string          `mapstructure:"app_env"`
	Port      int             `mapstructure:"port"`
	Postgres  PostgresConfig  `mapstructure:"pg"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Delete    DeleteConfig    `mapstructure:"delete_token"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	DB       string `mapstructure:"db"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds the postgres:// URL used by sqlx, GORM and the migrator.
func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DB,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type DeleteConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from defaults, an optional config file and the
// environment. Environment variables win; PG_HOST maps to pg.host and so on.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app_env", "development")
	v.SetDefault("port", 8080)

	v.SetDefault("pg.host", "localhost")
	v.SetDefault("pg.port", "5432")
	v.SetDefault("pg.user", "postgres")
	v.SetDefault("pg.db", "groundcheck")
	v.SetDefault("pg.password", "")
	v.SetDefault("pg.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("delete_token.secret", "")
	v.SetDefault("delete_token.ttl", "10m")

	v.SetDefault("rate_limit.rps", 5)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:8080"})

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// comma separated when coming from CORS_ALLOWED_ORIGINS
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	if cfg.Delete.Secret == "" && cfg.AppEnv != "production" {
		cfg.Delete.Secret = devDeleteTokenSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid config: port must be between 1 and 65535")
	}
	if len(c.Delete.Secret) < 16 {
		return fmt.Errorf("invalid config: DELETE_TOKEN_SECRET must be at least 16 characters")
	}
	if c.Delete.TTL <= 0 {
		return fmt.Errorf("invalid config: DELETE_TOKEN_TTL must be positive")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("invalid config: rate limit must be positive")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
