package config

import (
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/learning-assistant/internal/events"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled           bool
	Publisher         string // kafka, gochannel or mock
	KafkaBrokers      string
	NotificationTopic string
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	brokers := strings.Split(c.KafkaBrokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.NotificationTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.NotificationTopic,
			Logger:       logger,
		})
	case "gochannel":
		logger.Info("Creating in-process event publisher", "topic", c.NotificationTopic)
		return events.NewGoChannelEventPublisher(events.PublisherConfig{
			TopicName: c.NotificationTopic,
			Logger:    logger,
		}), nil
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}
