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
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Sheet    SheetConfig
	Storage  StorageConfig
	Import   ImportConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
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
	PoolMinConns   int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// SheetConfig points at the published CSV export of the candidate
// spreadsheet. The export holds rows for every job; callers filter by job ID.
type SheetConfig struct {
	CSVURL       string
	FetchTimeout time.Duration
}

type StorageConfig struct {
	Dir           string
	PublicBaseURL string
}

type ImportConfig struct {
	Workers int
	Buffer  int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE"),
		ConnectTimeout: durationFromEnv("DB_CONNECT_TIMEOUT_SECONDS", 5*time.Second),
		PoolMaxConns:   int32(intFromEnv("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:   int32(intFromEnv("DB_POOL_MIN_CONNS", 0)),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  durationFromEnv("JWT_ACCESS_EXPIRES_IN_SECONDS", 15*time.Minute),
		RefreshExpiresIn: durationFromEnv("JWT_REFRESH_EXPIRES_IN_SECONDS", 7*24*time.Hour),
	}

	cfg.Sheet = SheetConfig{
		CSVURL:       opt("SHEET_CSV_URL"),
		FetchTimeout: durationFromEnv("SHEET_FETCH_TIMEOUT_SECONDS", 10*time.Second),
	}

	cfg.Storage = StorageConfig{
		Dir:           opt("STORAGE_DIR"),
		PublicBaseURL: opt("STORAGE_PUBLIC_BASE_URL"),
	}

	cfg.Import = ImportConfig{
		Workers: intFromEnv("IMPORT_WORKERS", 2),
		Buffer:  intFromEnv("IMPORT_BUFFER", 256),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func intFromEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func durationFromEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}
