package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	AI       AIConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
}

type StorageConfig struct {
	Backend  string
	Key      string
	FileDir  string
	WriteTTL time.Duration
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type AIConfig struct {
	APIKey   string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

var storageBackends = []string{"memory", "file", "redis", "postgres"}

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	num := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    opt("LOG_LEVEL", "info"),
	}

	cfg.Storage = StorageConfig{
		Backend:  strings.ToLower(opt("STORAGE_BACKEND", "file")),
		Key:      opt("STORAGE_KEY", "skill-tracker-data"),
		FileDir:  opt("STORAGE_FILE_DIR", "data"),
		WriteTTL: dur("STORAGE_WRITE_TIMEOUT", 5*time.Second),
	}
	if !validBackend(cfg.Storage.Backend) {
		invalid = append(invalid, "STORAGE_BACKEND")
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST", "localhost"),
		DBPort:         opt("DB_PORT", "5432"),
		DBName:         opt("DB_NAME", ""),
		DBUser:         opt("DB_USER", ""),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE", "disable"),
		ConnectTimeout: dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:   int32(num("DB_POOL_MAX_CONNS", 0)),
	}
	if cfg.Storage.Backend == "postgres" {
		if cfg.Database.DBName == "" {
			missing = append(missing, "DB_NAME")
		}
		if cfg.Database.DBUser == "" {
			missing = append(missing, "DB_USER")
		}
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       num("REDIS_DB", 0),
		TTL:      time.Duration(num("REDIS_TTL", 600)) * time.Second,
	}

	apiKey := opt("GEMINI_API_KEY", "")
	if apiKey == "" {
		apiKey = opt("GOOGLE_API_KEY", "")
	}
	cfg.AI = AIConfig{
		APIKey:   apiKey,
		Model:    opt("AI_MODEL", "gemini-2.5-flash"),
		Timeout:  dur("AI_TIMEOUT", 30*time.Second),
		CacheTTL: dur("AI_CACHE_TTL", time.Hour),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func validBackend(b string) bool {
	for _, v := range storageBackends {
		if b == v {
			return true
		}
	}
	return false
}
