// Package config loads settings from an optional .env file and the
// environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port          string `mapstructure:"PORT"`
	GinMode       string `mapstructure:"GIN_MODE"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`

	StoreDriver string `mapstructure:"STORE_DRIVER"` // sqlite | postgres | mongo
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDB     string `mapstructure:"MONGO_DB"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheSize     int           `mapstructure:"CACHE_SIZE"`
	ListCacheTTL  time.Duration `mapstructure:"LIST_CACHE_TTL"`

	// 评论接口未传 article_id 时使用，留空则必须传
	DefaultArticleID string `mapstructure:"DEFAULT_ARTICLE_ID"`
	AllLabel         string `mapstructure:"ALL_LABEL"`
	DefaultPageSize  int    `mapstructure:"DEFAULT_PAGE_SIZE"`
	MaxPageSize      int    `mapstructure:"MAX_PAGE_SIZE"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// EnvFileLoaded reports whether the .env file was found.
	EnvFileLoaded bool `mapstructure:"-"`
}

var defaults = map[string]any{
	"PORT":               "8080",
	"GIN_MODE":           "debug",
	"SESSION_SECRET":     "secret",
	"STORE_DRIVER":       "sqlite",
	"DATABASE_URL":       "feedthread.db",
	"MONGO_URI":          "mongodb://localhost:27017",
	"MONGO_DB":           "feedthread",
	"REDIS_ADDR":         "",
	"REDIS_PASSWORD":     "",
	"REDIS_DB":           0,
	"CACHE_SIZE":         500,
	"LIST_CACHE_TTL":     "30s",
	"DEFAULT_ARTICLE_ID": "",
	"ALL_LABEL":          "All",
	"DEFAULT_PAGE_SIZE":  6,
	"MAX_PAGE_SIZE":      50,
	"RATE_LIMIT_RPS":     5.0,
	"RATE_LIMIT_BURST":   10,
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "json",
}

// Load reads envFile (default .env) if present, then the environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	loaded := godotenv.Load(envFile) == nil

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.EnvFileLoaded = loaded
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "sqlite", "postgres", "mongo":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.DefaultPageSize <= 0 || c.MaxPageSize <= 0 {
		return fmt.Errorf("page sizes must be positive")
	}
	if c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("DEFAULT_PAGE_SIZE %d exceeds MAX_PAGE_SIZE %d", c.DefaultPageSize, c.MaxPageSize)
	}
	if c.AllLabel == "" {
		return fmt.Errorf("ALL_LABEL must not be empty")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("CACHE_SIZE must be positive")
	}
	return nil
}
