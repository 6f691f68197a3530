package services

import (
	"context"
	"strings"

	"github.com/SAP-F-2025/learning-assistant/internal/client"
	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/validator"
)

// ProgressIndicator is shown for the duration of a generation round trip.
type ProgressIndicator interface {
	ShowProgress()
	HideProgress()
}

type noopProgress struct{}

func (noopProgress) ShowProgress() {}
func (noopProgress) HideProgress() {}

// QuizRequester retrieves question sets from the generation backend.
type QuizRequester struct {
	backend   client.BackendClient
	validator *validator.Validator
}

func NewQuizRequester(backend client.BackendClient, v *validator.Validator) *QuizRequester {
	return &QuizRequester{backend: backend, validator: v}
}

// RequestQuiz fetches a question set for documentID. An empty documentID
// returns ErrNoDocument without contacting the backend. Every other failure,
// including a request that does not validate, is a *GenerationFailure; nothing
// is retried.
func (r *QuizRequester) RequestQuiz(ctx context.Context, documentID string, style models.LearningStyle, questionCount int, progress ProgressIndicator) (models.QuestionSet, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, ErrNoDocument
	}
	if progress == nil {
		progress = noopProgress{}
	}

	req := models.GenerateQuizRequest{
		DocumentID:    documentID,
		LearningStyle: style,
		QuestionCount: questionCount,
	}
	if err := r.validator.Validate(&req); err != nil {
		return nil, &GenerationFailure{Message: MsgGenerationFailed, Cause: err}
	}

	progress.ShowProgress()
	defer progress.HideProgress()

	resp, err := r.backend.GenerateQuiz(ctx, req)
	if err != nil {
		return nil, &GenerationFailure{Message: MsgGenerationRetry, Cause: err}
	}
	if !resp.Success {
		message := strings.TrimSpace(resp.Error)
		if message == "" {
			message = MsgGenerationFailed
		}
		return nil, &GenerationFailure{Message: message}
	}

	if err := r.validator.Quiz().ValidateQuestionSet(resp.Questions); err != nil {
		return nil, &GenerationFailure{Message: MsgGenerationRetry, Cause: err}
	}

	return resp.Questions, nil
}
