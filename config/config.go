package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	App       AppConfig
	Log       LogConfig
	Calc      CalcConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port           string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CatalogCacheTTL time.Duration
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type LogConfig struct {
	Level    string
	Encoding string
	File     string
}

// CalcConfig holds the defaults applied when a request omits a parameter
type CalcConfig struct {
	ElectricityCostPerKwh float64
	DailyRuntimeHours     float64
	TurnoverHours         float64
}

type SchedulerConfig struct {
	CatalogRefreshCron string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			CORSOrigins:    getEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:5173"}),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 20),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "poolpro"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", ""),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvAsInt("REDIS_DB", 0),
			CatalogCacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", 15*time.Minute),
		},
		App: AppConfig{
			Name:        getEnv("APP_NAME", "poolpro-calculations"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
			File:     getEnv("LOG_FILE", ""),
		},
		Calc: CalcConfig{
			ElectricityCostPerKwh: getEnvAsFloat("ELECTRICITY_COST_PER_KWH", 50),
			DailyRuntimeHours:     getEnvAsFloat("DAILY_RUNTIME_HOURS", 8),
			TurnoverHours:         getEnvAsFloat("TURNOVER_HOURS", 8),
		},
		Scheduler: SchedulerConfig{
			CatalogRefreshCron: getEnv("CATALOG_REFRESH_CRON", "@every 10m"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("DB_DSN or DB_HOST is required")
	}

	if c.Calc.ElectricityCostPerKwh < 0 {
		return fmt.Errorf("ELECTRICITY_COST_PER_KWH must not be negative")
	}

	if c.Calc.DailyRuntimeHours <= 0 || c.Calc.DailyRuntimeHours > 24 {
		return fmt.Errorf("DAILY_RUNTIME_HOURS must be within (0, 24]")
	}

	if c.Calc.TurnoverHours <= 0 {
		return fmt.Errorf("TURNOVER_HOURS must be positive")
	}

	switch strings.ToLower(c.Log.Encoding) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_ENCODING must be json or console")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
