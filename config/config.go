package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// MemoryStore selects the in-memory account store instead of MongoDB.
const MemoryStore = "memory"

type Config struct {
	Port           int
	DBLocation     string
	DBName         string
	DBCollection   string
	SecretKey      string
	BcryptCost     int
	RequestTimeout time.Duration
	LogLevel       slog.Level
}

var ErrMissingSecret = errors.New("SECRET_ACCESS_KEY must be set")

// Load reads envFile, if present, into the environment and builds a Config
// from it. Variables already set in the environment take precedence.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var err error
	cfg := Config{
		DBLocation:   getEnv("DB_LOCATION", "mongodb://127.0.0.1:27017"),
		DBName:       getEnv("DB_NAME", "blog"),
		DBCollection: getEnv("DB_COLLECTION", "users"),
		SecretKey:    getEnv("SECRET_ACCESS_KEY", ""),
	}

	if cfg.Port, err = getEnvInt("PORT", 3000); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = getEnvInt("BCRYPT_COST", 10); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("invalid BCRYPT_COST: %d is outside [%d, %d]", cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.LogLevel, err = getEnvLevel("LOG_LEVEL", slog.LevelInfo); err != nil {
		return Config{}, err
	}

	if cfg.SecretKey == "" {
		return Config{}, ErrMissingSecret
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(valueStr))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvLevel(key string, defaultValue slog.Level) (slog.Level, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(valueStr))); err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return level, nil
}
