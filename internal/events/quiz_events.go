package events

import (
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/google/uuid"
)

// EventType represents the kinds of events the quiz client emits
type EventType string

const (
	// Quiz lifecycle events
	EventQuizRequested        EventType = "quiz.requested"
	EventQuizGenerated        EventType = "quiz.generated"
	EventQuizGenerationFailed EventType = "quiz.generation_failed"
	EventQuizGraded           EventType = "quiz.graded"

	// UI events
	EventNotificationShown EventType = "notification.shown"
)

const (
	eventSource  = "learning-assistant-quiz"
	eventVersion = "1.0"
)

// Event is the envelope shared by all published events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	SessionID string                 `json:"session_id"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type QuizRequestedEvent struct {
	DocumentID    string               `json:"document_id"`
	LearningStyle models.LearningStyle `json:"learning_style"`
	QuestionCount int                  `json:"question_count"`
}

type QuizGeneratedEvent struct {
	QuizID        string               `json:"quiz_id"`
	DocumentID    string               `json:"document_id"`
	LearningStyle models.LearningStyle `json:"learning_style"`
	QuestionCount int                  `json:"question_count"`
}

type QuizGenerationFailedEvent struct {
	DocumentID string `json:"document_id"`
	Reason     string `json:"reason"`
}

type QuizGradedEvent struct {
	QuizID        string               `json:"quiz_id"`
	LearningStyle models.LearningStyle `json:"learning_style"`
	CorrectCount  int                  `json:"correct_count"`
	Total         int                  `json:"total"`
	Percentage    float64              `json:"percentage"`
	Band          models.Band          `json:"band"`
}

type NotificationShownEvent struct {
	NotificationID string                  `json:"notification_id"`
	Type           models.NotificationType `json:"type"`
	Message        string                  `json:"message"`
	ExpiresAt      time.Time               `json:"expires_at"`
}

func newEvent(eventType EventType, sessionID string, data interface{}) *Event {
	return &Event{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		SessionID: sessionID,
		Data:      data,
	}
}

func NewQuizRequestedEvent(sessionID string, req models.GenerateQuizRequest) *Event {
	return newEvent(EventQuizRequested, sessionID, QuizRequestedEvent{
		DocumentID:    req.DocumentID,
		LearningStyle: req.LearningStyle,
		QuestionCount: req.QuestionCount,
	})
}

func NewQuizGeneratedEvent(sessionID, quizID, documentID string, style models.LearningStyle, questionCount int) *Event {
	return newEvent(EventQuizGenerated, sessionID, QuizGeneratedEvent{
		QuizID:        quizID,
		DocumentID:    documentID,
		LearningStyle: style,
		QuestionCount: questionCount,
	})
}

func NewQuizGenerationFailedEvent(sessionID, documentID, reason string) *Event {
	return newEvent(EventQuizGenerationFailed, sessionID, QuizGenerationFailedEvent{
		DocumentID: documentID,
		Reason:     reason,
	})
}

func NewQuizGradedEvent(sessionID, quizID string, style models.LearningStyle, result models.QuizResult) *Event {
	return newEvent(EventQuizGraded, sessionID, QuizGradedEvent{
		QuizID:        quizID,
		LearningStyle: style,
		CorrectCount:  result.CorrectCount,
		Total:         result.Total,
		Percentage:    result.Percentage,
		Band:          result.Band,
	})
}

func NewNotificationShownEvent(n models.Notification) *Event {
	return newEvent(EventNotificationShown, n.SessionID, NotificationShownEvent{
		NotificationID: n.ID,
		Type:           n.Type,
		Message:        n.Message,
		ExpiresAt:      n.ExpiresAt,
	})
}

func GenerateEventID() string {
	return uuid.NewString()
}
