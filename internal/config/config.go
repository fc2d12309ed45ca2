package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	NSE    NSEConfig
	Cache  CacheConfig
	Redis  RedisConfig
	View   ViewConfig
}

type ServerConfig struct {
	Port string
}

type NSEConfig struct {
	ArchivesURL  string
	UserAgent    string
	FetchTimeout time.Duration
}

type CacheConfig struct {
	TTL time.Duration
}

type RedisConfig struct {
	URL string
}

type ViewConfig struct {
	DefaultPageSize int
	TopCount        int
}

// Load returns application configuration loaded from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvWithDefault("PORT", "8000"),
		},
		NSE: NSEConfig{
			ArchivesURL: getEnvWithDefault("NSE_ARCHIVES_URL", "https://archives.nseindia.com"),
			// NSE drops requests from non-browser agents.
			UserAgent:    getEnvWithDefault("NSE_USER_AGENT", "Mozilla/5.0"),
			FetchTimeout: getDurationWithDefault("NSE_FETCH_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			TTL: getDurationWithDefault("REFDATA_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			URL: getEnvWithDefault("REDIS_URL", "redis://localhost:6379/0"),
		},
		View: ViewConfig{
			DefaultPageSize: getIntWithDefault("DEFAULT_PAGE_SIZE", 50),
			TopCount:        getIntWithDefault("TOP_PERFORMERS_COUNT", 100),
		},
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
