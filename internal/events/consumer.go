package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Handler processes one decoded event.
type Handler func(ctx context.Context, event *Event) error

// Consume feeds every message to the handlers until ctx is cancelled or the
// channel closes. Messages are always acked; failures are logged.
func Consume(ctx context.Context, messages <-chan *message.Message, logger *slog.Logger, handlers ...Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			event, err := DecodeEvent(msg)
			if err != nil {
				logger.Warn("Dropping undecodable event", "message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}

			for _, handle := range handlers {
				if err := handle(ctx, event); err != nil {
					logger.Error("Event handler failed",
						"event_id", event.ID,
						"event_type", event.Type,
						"error", err)
				}
			}
			msg.Ack()
		}
	}
}

// LogHandler logs every event at debug level.
func LogHandler(logger *slog.Logger) Handler {
	return func(ctx context.Context, event *Event) error {
		logger.DebugContext(ctx, "Event received",
			"event_id", event.ID,
			"event_type", event.Type,
			"session_id", event.SessionID)
		return nil
	}
}

// DecodeData converts Data into out. Data is a typed payload when the event
// was built locally and a generic JSON value after a round trip.
func (e *Event) DecodeData(out interface{}) error {
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("failed to encode %s data: %w", e.Type, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s data: %w", e.Type, err)
	}
	return nil
}
