package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// Config holds all configuration
type Config struct {
	MySQL     MySQLConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Remnawave RemnawaveConfig
	Sweep     SweepConfig
	Admin     AdminConfig
	Migrate   bool
	HTTPAddr  string
}

// MySQLConfig holds MySQL configuration
type MySQLConfig struct {
	DSN string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	ExpireMinutes int
	Issuer        string
}

// RemnawaveConfig holds the panel connection settings
type RemnawaveConfig struct {
	BaseURL  string
	APIToken string
}

// SweepConfig holds the expiry sweep worker configuration
type SweepConfig struct {
	Enabled     bool
	IntervalSec int
	LockTTLSec  int
}

// AdminConfig holds the seed credentials for the first admin user
type AdminConfig struct {
	Username string
	Password string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		MySQL: MySQLConfig{
			DSN: getEnv("MYSQL_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASS", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:        os.Getenv("JWT_SECRET"),
			ExpireMinutes: getEnvInt("JWT_EXPIRE_MINUTES", 1440),
			Issuer:        getEnv("JWT_ISSUER", "go_vpnadmin"),
		},
		Remnawave: RemnawaveConfig{
			BaseURL:  getEnv("REMNAWAVE_BASE_URL", ""),
			APIToken: getEnv("REMNAWAVE_API_TOKEN", ""),
		},
		Sweep: SweepConfig{
			Enabled:     getEnv("SWEEP_ENABLED", "1") == "1",
			IntervalSec: getEnvInt("SWEEP_INTERVAL_SEC", 300),
			LockTTLSec:  getEnvInt("SWEEP_LOCK_TTL_SEC", 120),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Migrate:  getEnv("MIGRATE", "0") == "1",
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// Validate required fields
	if cfg.MySQL.DSN == "" {
		return nil, fmt.Errorf("MYSQL_DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Remnawave.BaseURL == "" {
		return nil, fmt.Errorf("REMNAWAVE_BASE_URL is required")
	}
	if cfg.Remnawave.APIToken == "" {
		return nil, fmt.Errorf("REMNAWAVE_API_TOKEN is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// LoadFromINI loads configuration from an INI file with environment variable
// override (priority: ENV > INI > default)
func LoadFromINI(iniPath string) (*Config, error) {
	cfgFile, err := ini.Load(iniPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load INI file: %w", err)
	}

	getValue := func(envKey, iniSection, iniKey, defaultValue string) string {
		if value := os.Getenv(envKey); value != "" {
			return value
		}
		if value := cfgFile.Section(iniSection).Key(iniKey).String(); value != "" {
			return value
		}
		return defaultValue
	}

	getValueInt := func(envKey, iniSection, iniKey string, defaultValue int) int {
		if value := os.Getenv(envKey); value != "" {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		if cfgFile.Section(iniSection).HasKey(iniKey) {
			if value, err := cfgFile.Section(iniSection).Key(iniKey).Int(); err == nil {
				return value
			}
		}
		return defaultValue
	}

	getValueBool := func(envKey, iniSection, iniKey string, defaultValue bool) bool {
		if value := os.Getenv(envKey); value != "" {
			return value == "1" || value == "true"
		}
		if value, err := cfgFile.Section(iniSection).Key(iniKey).Bool(); err == nil {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		MySQL: MySQLConfig{
			DSN: getValue("MYSQL_DSN", "mysql", "dsn", ""),
		},
		Redis: RedisConfig{
			Addr:     getValue("REDIS_ADDR", "redis", "addr", "localhost:6379"),
			Password: getValue("REDIS_PASS", "redis", "pass", ""),
			DB:       getValueInt("REDIS_DB", "redis", "db", 0),
		},
		JWT: JWTConfig{
			Secret:        getValue("JWT_SECRET", "jwt", "secret", ""),
			ExpireMinutes: getValueInt("JWT_EXPIRE_MINUTES", "jwt", "expire_minutes", 1440),
			Issuer:        getValue("JWT_ISSUER", "jwt", "issuer", "go_vpnadmin"),
		},
		Remnawave: RemnawaveConfig{
			BaseURL:  getValue("REMNAWAVE_BASE_URL", "remnawave", "base_url", ""),
			APIToken: getValue("REMNAWAVE_API_TOKEN", "remnawave", "api_token", ""),
		},
		Sweep: SweepConfig{
			Enabled:     getValueBool("SWEEP_ENABLED", "sweep", "enabled", true),
			IntervalSec: getValueInt("SWEEP_INTERVAL_SEC", "sweep", "interval_sec", 300),
			LockTTLSec:  getValueInt("SWEEP_LOCK_TTL_SEC", "sweep", "lock_ttl_sec", 120),
		},
		Admin: AdminConfig{
			Username: getValue("ADMIN_USERNAME", "admin", "username", "admin"),
			Password: getValue("ADMIN_PASSWORD", "admin", "password", ""),
		},
		Migrate:  getValueBool("MIGRATE", "app", "migrate", false),
		HTTPAddr: getValue("HTTP_ADDR", "http", "addr", ":8080"),
	}

	if cfg.MySQL.DSN == "" {
		return nil, fmt.Errorf("MYSQL_DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Remnawave.BaseURL == "" {
		return nil, fmt.Errorf("REMNAWAVE_BASE_URL is required")
	}
	if cfg.Remnawave.APIToken == "" {
		return nil, fmt.Errorf("REMNAWAVE_API_TOKEN is required")
	}

	return cfg, nil
}
