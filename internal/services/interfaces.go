package services

import (
	"context"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
)

// QuizService drives the quiz flow for one session at a time. Every failure it
// returns has already been surfaced to the session as a notification.
type QuizService interface {
	// Session setters
	SetLearningStyle(ctx context.Context, session *Session, style models.LearningStyle) error
	SetActiveDocument(ctx context.Context, session *Session, documentID string) error
	LoadPreferences(ctx context.Context, session *Session) (models.LearningStyle, error)

	// Quiz lifecycle
	GenerateQuiz(ctx context.Context, session *Session) (*QuizInstance, error)
	SelectOption(ctx context.Context, session *Session, quizID string, question, option int) (*QuizInstance, error)
	SubmitQuiz(ctx context.Context, session *Session, quizID string) (*models.QuizResult, error)

	// Backend status
	CheckBackend(ctx context.Context, session *Session) (*models.HealthStatus, error)
	ListDocuments(ctx context.Context) ([]models.Document, error)
}
