package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken     string
	BotUsername  string
	AdminChatID  int64
	Environment  string
	DataDir      string
	HealthPort   string
	PlatformCard string
	SellerShare  float64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		BotToken:     getEnv("BOT_TOKEN", ""),
		BotUsername:  getEnv("BOT_USERNAME", "UniSlayd"),
		AdminChatID:  getEnvAsInt64("ADMIN_CHAT_ID", 0),
		Environment:  getEnv("ENVIRONMENT", "development"),
		DataDir:      getEnv("DATA_DIR", "data"),
		HealthPort:   getEnv("HEALTH_PORT", "8080"),
		PlatformCard: getEnv("PLATFORM_CARD", "4098584494745886"),
		SellerShare:  getEnvAsFloat64("SELLER_SHARE", 0.70),
	}

	if config.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if config.AdminChatID == 0 {
		return nil, fmt.Errorf("ADMIN_CHAT_ID is required")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}
