package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/events"
	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/utils"
	"github.com/google/uuid"
)

// NotificationService shows transient toasts. Each session has at most one
// visible toast; a new one replaces the previous one.
type NotificationService interface {
	Notify(ctx context.Context, sessionID string, notificationType models.NotificationType, message string) (models.Notification, error)
	Current(sessionID string) (models.Notification, bool)
	Dismiss(sessionID string)
	Prune() int
}

type notificationService struct {
	mu      sync.Mutex
	current map[string]models.Notification

	ttl            time.Duration
	eventPublisher events.EventPublisher
	logger         utils.Logger
	now            func() time.Time
}

func NewNotificationService(ttl time.Duration, eventPublisher events.EventPublisher, logger utils.Logger) NotificationService {
	return newNotificationService(ttl, eventPublisher, logger, time.Now)
}

func newNotificationService(ttl time.Duration, eventPublisher events.EventPublisher, logger utils.Logger, now func() time.Time) *notificationService {
	return &notificationService{
		current:        make(map[string]models.Notification),
		ttl:            ttl,
		eventPublisher: eventPublisher,
		logger:         logger,
		now:            now,
	}
}

// Notify replaces the session's toast. Publishing failures are logged and do
// not fail the call; the toast is still shown.
func (s *notificationService) Notify(ctx context.Context, sessionID string, notificationType models.NotificationType, message string) (models.Notification, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.Notification{}, NewValidationError("message", "is required", message)
	}

	now := s.now()
	n := models.Notification{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Type:      notificationType,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.current[sessionID] = n
	s.mu.Unlock()

	if err := s.eventPublisher.PublishEvent(ctx, events.NewNotificationShownEvent(n)); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish notification event",
			"session_id", sessionID,
			"notification_id", n.ID,
			"error", err)
	}

	return n, nil
}

// Current returns the visible toast, if it has not expired yet.
func (s *notificationService) Current(sessionID string) (models.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.current[sessionID]
	if !ok {
		return models.Notification{}, false
	}
	if n.ExpiredAt(s.now()) {
		delete(s.current, sessionID)
		return models.Notification{}, false
	}
	return n, true
}

func (s *notificationService) Dismiss(sessionID string) {
	s.mu.Lock()
	delete(s.current, sessionID)
	s.mu.Unlock()
}

// Prune removes expired toasts and returns how many were dropped.
func (s *notificationService) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for sessionID, n := range s.current {
		if n.ExpiredAt(now) {
			delete(s.current, sessionID)
			removed++
		}
	}
	return removed
}
