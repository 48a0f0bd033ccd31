package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		AppPort:  get("APP_PORT", "8080"),
		AppEnv:   get("APP_ENV", "dev"),
		LogLevel: get("LOG_LEVEL", "info"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "techschool"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		// กันล่มในเครื่อง dev (โปรดตั้ง JWT_SECRET ใน .env จริง)
		JWTSecret:  get("JWT_SECRET", "dev-secret"),
		AccessTTL:  time.Duration(getInt("JWT_ACCESS_TTL_MIN", 60)) * time.Minute,
		RefreshTTL: time.Duration(getInt("JWT_REFRESH_TTL_H", 7*24)) * time.Hour,
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
