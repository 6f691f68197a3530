package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	// Learning-assistant backend that owns /api/generate_quiz and friends
	BackendURL     string
	BackendTimeout time.Duration

	QuestionCount int
	ToastDuration time.Duration
	SessionTTL    time.Duration

	Events EventConfig
}

// LoadConfig reads .env when present and falls back to process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	backendTimeout, err := getEnvDuration("BACKEND_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	toastDuration, err := getEnvDuration("TOAST_DURATION", 5*time.Second)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getEnvDuration("SESSION_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	questionCount, err := getEnvInt("QUIZ_QUESTION_COUNT", 5)
	if err != nil {
		return nil, err
	}
	if questionCount < 1 || questionCount > models.MaxQuestionCount {
		return nil, fmt.Errorf("config: QUIZ_QUESTION_COUNT must be between 1 and %d, got %d", models.MaxQuestionCount, questionCount)
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8000"),
		BackendTimeout: backendTimeout,
		QuestionCount:  questionCount,
		ToastDuration:  toastDuration,
		SessionTTL:     sessionTTL,
		Events: EventConfig{
			Enabled:           getEnv("EVENTS_ENABLED", "true") == "true",
			Publisher:         getEnv("EVENTS_PUBLISHER", "gochannel"),
			KafkaBrokers:      getEnv("KAFKA_BROKERS", "localhost:9092"),
			NotificationTopic: getEnv("NOTIFICATION_TOPIC", "learning-assistant.quiz"),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid integer: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", key, value, err)
	}
	return d, nil
}
