package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config конфигурация сервиса, заполняется из переменных окружения
type Config struct {
	Port          string  `json:"port"`
	GinMode       string  `json:"gin_mode"`
	ModelPath     string  `json:"model_path"`
	SettingsPath  string  `json:"settings_path"`
	DatasetPath   string  `json:"dataset_path"`
	HistoryDBPath string  `json:"history_db_path"`
	RateLimitRPS  float64 `json:"rate_limit_rps"`
	RateBurst     int     `json:"rate_burst"`
}

// LoadConfig загружает конфигурацию из переменных окружения
// со значениями по умолчанию для локального запуска
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		GinMode:       getEnv("GIN_MODE", "release"),
		ModelPath:     getEnv("MODEL_PATH", "models/intent_classifier.json"),
		SettingsPath:  getEnv("SETTINGS_PATH", "configs/settings.json"),
		DatasetPath:   getEnv("DATASET_PATH", "configs/dataset.json"),
		HistoryDBPath: getEnv("HISTORY_DB_PATH", "data/query_history.db"),
		RateLimitRPS:  getEnvFloat("RATE_LIMIT_RPS", 50),
		RateBurst:     getEnvInt("RATE_BURST", 100),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("порт сервера не задан")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("некорректный порт %q: %w", c.Port, err)
	}
	if c.ModelPath == "" {
		return fmt.Errorf("путь к артефакту модели не задан")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("лимит запросов должен быть положительным, получен %v", c.RateLimitRPS)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("burst лимита запросов должен быть не меньше 1, получен %d", c.RateBurst)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
