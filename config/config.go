package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string
	DataFile     string
	DefaultTheme string
	JWTSecret    string
	HistoryLimit int
	OpenBrowser  bool
}

func Load() *Config {
	// Загрузка .env файла
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Addr:         getEnv("CALC_ADDR", ":8080"),
		DataFile:     getEnv("CALC_DATA_FILE", "calculator_data.json"),
		DefaultTheme: getEnv("CALC_THEME", "light"),
		JWTSecret:    getEnv("CALC_JWT_SECRET", "your-secret-key-change-in-production"),
		HistoryLimit: getEnvAsInt("CALC_HISTORY_LIMIT", 100),
		OpenBrowser:  getEnvAsBool("CALC_OPEN_BROWSER", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}
