package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Addr      string
	DBPath    string
	LogLevel  string
	LogFormat string
}

type ClientConfig struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	LogFile     string
}

// LoadDotenv loads a .env file when one exists. A missing file is not an
// error; explicit environment always wins.
func LoadDotenv() {
	_ = godotenv.Load()
}

func LoadServer() ServerConfig {
	return ServerConfig{
		Addr:      getEnv("TASKBOARD_ADDR", ":8080"),
		DBPath:    getEnv("TASKBOARD_DB_PATH", "taskboard.db"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func LoadClient() ClientConfig {
	return ClientConfig{
		APIBaseURL:  getEnv("TASKBOARD_API_URL", "http://localhost:8080"),
		HTTPTimeout: time.Duration(getEnvInt("TASKBOARD_HTTP_TIMEOUT", 10)) * time.Second,
		LogFile:     getEnv("TASKBOARD_LOG_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
