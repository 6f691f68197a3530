package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/client"
	"github.com/SAP-F-2025/learning-assistant/internal/events"
	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/utils"
	"github.com/SAP-F-2025/learning-assistant/internal/validator"
)

type quizService struct {
	backend        client.BackendClient
	requester      *QuizRequester
	presenter      *QuizPresenter
	notifications  NotificationService
	eventPublisher events.EventPublisher
	logger         *ServiceLogger
	questionCount  int
}

func NewQuizService(
	backend client.BackendClient,
	notifications NotificationService,
	eventPublisher events.EventPublisher,
	logger utils.Logger,
	validator *validator.Validator,
	questionCount int,
) QuizService {
	if questionCount < 1 {
		questionCount = models.DefaultQuestionCount
	}
	return &quizService{
		backend:        backend,
		requester:      NewQuizRequester(backend, validator),
		presenter:      NewQuizPresenter(validator),
		notifications:  notifications,
		eventPublisher: eventPublisher,
		logger:         NewServiceLogger(logger, "quiz"),
		questionCount:  questionCount,
	}
}

// ===== SESSION SETTERS =====

// SetLearningStyle updates the session and mirrors the choice to the backend.
// A backend failure is logged only; the local style still changes.
func (s *quizService) SetLearningStyle(ctx context.Context, session *Session, style models.LearningStyle) error {
	start := time.Now()

	if err := session.SetLearningStyle(style); err != nil {
		s.notify(ctx, session, models.NotificationError, err.Error())
		s.logger.LogOperation(ctx, "set_learning_style", session.ID(), string(style), time.Since(start), err)
		return err
	}

	if _, err := s.backend.SetLearningStyle(ctx, style); err != nil {
		s.logger.Logger().WarnContext(ctx, "Failed to sync learning style with backend",
			"session_id", session.ID(),
			"learning_style", style,
			"error", err)
	}

	s.notify(ctx, session, models.NotificationSuccess, MsgStyleUpdated)
	s.logger.LogOperation(ctx, "set_learning_style", session.ID(), string(style), time.Since(start), nil)
	return nil
}

func (s *quizService) SetActiveDocument(ctx context.Context, session *Session, documentID string) error {
	start := time.Now()
	err := session.SetActiveDocument(documentID)
	if err != nil {
		s.notify(ctx, session, models.NotificationError, MsgNoDocument)
	}
	s.logger.LogOperation(ctx, "set_active_document", session.ID(), documentID, time.Since(start), err)
	return err
}

// LoadPreferences applies the style stored with the user's onboarding
// answers. Missing preferences keep the current style.
func (s *quizService) LoadPreferences(ctx context.Context, session *Session) (models.LearningStyle, error) {
	prefs, err := s.backend.UserPreferences(ctx)
	if errors.Is(err, client.ErrNoPreferences) {
		return session.LearningStyle(), nil
	}
	if err != nil {
		return session.LearningStyle(), fmt.Errorf("failed to load user preferences: %w", err)
	}

	style := models.StyleFromPreference(prefs.LearningStyle)
	if err := session.SetLearningStyle(style); err != nil {
		return session.LearningStyle(), err
	}

	s.logger.Logger().DebugContext(ctx, "Applied stored learning style",
		"session_id", session.ID(),
		"preference", prefs.LearningStyle,
		"learning_style", style)
	return style, nil
}

// ===== QUIZ LIFECYCLE =====

// GenerateQuiz requests a question set for the session's active document and
// renders it. Without an active document nothing is requested. A trigger while
// a request is outstanding returns ErrRequestInFlight.
func (s *quizService) GenerateQuiz(ctx context.Context, session *Session) (quiz *QuizInstance, err error) {
	start := time.Now()
	documentID, _ := session.ActiveDocument()
	defer func() {
		s.logger.LogOperation(ctx, "generate_quiz", session.ID(), documentID, time.Since(start), err)
	}()

	if documentID == "" {
		s.notify(ctx, session, models.NotificationError, MsgNoDocument)
		return nil, ErrNoDocument
	}

	if err = session.beginGeneration(); err != nil {
		s.notify(ctx, session, models.NotificationInfo, MsgRequestInFlight)
		return nil, err
	}

	style := session.LearningStyle()
	s.publish(ctx, events.NewQuizRequestedEvent(session.ID(), models.GenerateQuizRequest{
		DocumentID:    documentID,
		LearningStyle: style,
		QuestionCount: s.questionCount,
	}))

	questions, err := s.requester.RequestQuiz(ctx, documentID, style, s.questionCount, session)
	if err != nil {
		session.finishGeneration(nil, err)
		s.notify(ctx, session, models.NotificationError, UserMessage(err))
		s.publish(ctx, events.NewQuizGenerationFailedEvent(session.ID(), documentID, err.Error()))
		return nil, err
	}

	quiz = s.presenter.Render(documentID, questions, style)
	session.finishGeneration(quiz, nil)

	s.notify(ctx, session, models.NotificationSuccess, MsgQuizReady)
	s.publish(ctx, events.NewQuizGeneratedEvent(session.ID(), quiz.ID(), documentID, style, len(questions)))

	return quiz, nil
}

func (s *quizService) SelectOption(ctx context.Context, session *Session, quizID string, question, option int) (*QuizInstance, error) {
	start := time.Now()
	quiz, err := session.Quiz(quizID)
	if err != nil {
		return nil, err
	}

	if err := quiz.Select(question, option); err != nil {
		if errors.Is(err, ErrQuizAlreadyGraded) {
			s.notify(ctx, session, models.NotificationInfo, MsgQuizAlreadyGraded)
		}
		s.logger.LogOperation(ctx, "select_option", session.ID(), quizID, time.Since(start), err)
		return quiz, err
	}

	return quiz, nil
}

// SubmitQuiz grades the quiz once. Unanswered questions leave it editable and
// show a notice naming them.
func (s *quizService) SubmitQuiz(ctx context.Context, session *Session, quizID string) (*models.QuizResult, error) {
	start := time.Now()

	quiz, err := session.Quiz(quizID)
	if err != nil {
		s.logger.LogOperation(ctx, "submit_quiz", session.ID(), quizID, time.Since(start), err)
		return nil, err
	}

	result, err := quiz.Submit()
	if err != nil {
		var unanswered *UnansweredError
		switch {
		case errors.As(err, &unanswered):
			s.notify(ctx, session, models.NotificationError, unanswered.Notice())
		case errors.Is(err, ErrQuizAlreadyGraded):
			s.notify(ctx, session, models.NotificationInfo, MsgQuizAlreadyGraded)
		}
		s.logger.LogOperation(ctx, "submit_quiz", session.ID(), quizID, time.Since(start), err)
		return nil, err
	}

	s.publish(ctx, events.NewQuizGradedEvent(session.ID(), quiz.ID(), quiz.LearningStyle(), result))
	s.logger.LogOperation(ctx, "submit_quiz", session.ID(), quizID, time.Since(start), nil)

	return &result, nil
}

// ===== BACKEND STATUS =====

// CheckBackend queries the backend health endpoint and warns the session when
// the backend or its model is unavailable.
func (s *quizService) CheckBackend(ctx context.Context, session *Session) (*models.HealthStatus, error) {
	health, err := s.backend.HealthCheck(ctx)
	if err != nil {
		if session != nil {
			s.notify(ctx, session, models.NotificationError, MsgBackendUnavailable)
		}
		return nil, fmt.Errorf("backend health check failed: %w", err)
	}

	if !health.GeminiAvailable && session != nil {
		s.notify(ctx, session, models.NotificationError, MsgModelUnavailable)
	}
	return health, nil
}

func (s *quizService) ListDocuments(ctx context.Context) ([]models.Document, error) {
	docs, err := s.backend.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// ===== HELPERS =====

func (s *quizService) notify(ctx context.Context, session *Session, notificationType models.NotificationType, message string) {
	if _, err := s.notifications.Notify(ctx, session.ID(), notificationType, message); err != nil {
		s.logger.Logger().WarnContext(ctx, "Failed to show notification",
			"session_id", session.ID(),
			"error", err)
	}
}

func (s *quizService) publish(ctx context.Context, event *events.Event) {
	if err := s.eventPublisher.PublishEvent(ctx, event); err != nil {
		s.logger.Logger().WarnContext(ctx, "Failed to publish event",
			"event_type", event.Type,
			"session_id", event.SessionID,
			"error", err)
	}
}
