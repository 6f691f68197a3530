package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BACKEND_URL", "")
	t.Setenv("BACKEND_TIMEOUT", "")
	t.Setenv("TOAST_DURATION", "")
	t.Setenv("QUIZ_QUESTION_COUNT", "")
	t.Setenv("EVENTS_PUBLISHER", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 60*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 5*time.Second, cfg.ToastDuration)
	assert.Equal(t, 5, cfg.QuestionCount)
	assert.Equal(t, "gochannel", cfg.Events.Publisher)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TOAST_DURATION", "3s")
	t.Setenv("QUIZ_QUESTION_COUNT", "8")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.ToastDuration)
	assert.Equal(t, 8, cfg.QuestionCount)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("TOAST_DURATION", "soon")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "TOAST_DURATION")
	})

	t.Run("non positive question count", func(t *testing.T) {
		t.Setenv("QUIZ_QUESTION_COUNT", "0")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "QUIZ_QUESTION_COUNT")
	})

	t.Run("question count above the limit", func(t *testing.T) {
		t.Setenv("QUIZ_QUESTION_COUNT", "51")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "QUIZ_QUESTION_COUNT")
	})
}

func TestEventConfig_CreateEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("disabled falls back to mock", func(t *testing.T) {
		cfg := EventConfig{Enabled: false, Publisher: "kafka"}
		pub, err := cfg.CreateEventPublisher(logger)
		require.NoError(t, err)
		assert.IsType(t, &events.MockEventPublisher{}, pub)
	})

	t.Run("gochannel", func(t *testing.T) {
		cfg := EventConfig{Enabled: true, Publisher: "gochannel", NotificationTopic: "quiz"}
		pub, err := cfg.CreateEventPublisher(logger)
		require.NoError(t, err)
		assert.IsType(t, &events.GoChannelEventPublisher{}, pub)
		assert.NoError(t, pub.Close())
	})

	t.Run("unknown publisher", func(t *testing.T) {
		cfg := EventConfig{Enabled: true, Publisher: "carrier-pigeon"}
		pub, err := cfg.CreateEventPublisher(logger)
		require.NoError(t, err)
		assert.IsType(t, &events.MockEventPublisher{}, pub)
	})

	t.Run("broker list is trimmed", func(t *testing.T) {
		cfg := EventConfig{KafkaBrokers: "a:9092, b:9092"}
		assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.GetKafkaBrokers())
	})
}
