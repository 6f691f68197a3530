package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher defines the interface for publishing quiz and notification events
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *Event) error
	Close() error
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// watermillEventPublisher publishes JSON encoded events through any watermill publisher
type watermillEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

func (p *watermillEventPublisher) PublishEvent(ctx context.Context, event *Event) error {
	msg, err := newEventMessage(ctx, event)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

func (p *watermillEventPublisher) Close() error {
	return p.publisher.Close()
}

func newEventMessage(ctx context.Context, event *Event) (*message.Message, error) {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.SetContext(ctx)

	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("session_id", event.SessionID)
	msg.Metadata.Set("timestamp", event.Timestamp.Format("2006-01-02T15:04:05Z07:00"))

	return msg, nil
}

// KafkaEventPublisher implements EventPublisher using Watermill with Kafka
type KafkaEventPublisher struct {
	watermillEventPublisher
}

// NewKafkaEventPublisher creates a new Kafka-based event publisher using Watermill
func NewKafkaEventPublisher(config PublisherConfig) (*KafkaEventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{watermillEventPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}}, nil
}

// GoChannelEventPublisher keeps events in process. Subscribers receive every
// event published after they subscribed.
type GoChannelEventPublisher struct {
	watermillEventPublisher
	pubSub *gochannel.GoChannel
}

func NewGoChannelEventPublisher(config PublisherConfig) *GoChannelEventPublisher {
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(config.Logger))

	return &GoChannelEventPublisher{
		watermillEventPublisher: watermillEventPublisher{
			publisher: pubSub,
			logger:    config.Logger,
			topicName: config.TopicName,
		},
		pubSub: pubSub,
	}
}

// Subscribe returns the raw watermill messages of the event topic. Consumers
// must Ack every message.
func (p *GoChannelEventPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, p.topicName)
}

// DecodeEvent unmarshals a published message back into an Event. Data is left
// as a generic JSON value.
func DecodeEvent(msg *message.Message) (*Event, error) {
	var event Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event %s: %w", msg.UUID, err)
	}
	return &event, nil
}

// MockEventPublisher is a mock implementation for testing
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []Event
	Logger *slog.Logger
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]Event, 0),
		Logger: logger,
	}
}

// PublishEvent stores the event in memory
func (m *MockEventPublisher) PublishEvent(ctx context.Context, event *Event) error {
	m.mu.Lock()
	m.Events = append(m.Events, *event)
	m.mu.Unlock()

	m.Logger.Debug("Mock: Published event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns a copy of all published events
func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.Events))
	copy(out, m.Events)
	return out
}

// EventsOfType filters published events by type
func (m *MockEventPublisher) EventsOfType(eventType EventType) []Event {
	var out []Event
	for _, e := range m.GetPublishedEvents() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// ClearEvents clears all published events
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	m.Events = make([]Event, 0)
	m.mu.Unlock()
}
