package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/SAP-F-2025/learning-assistant/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrValidationFailed = errors.New("validation failed")

	// Quiz generation
	ErrNoDocument      = errors.New("no document available for quiz generation")
	ErrRequestInFlight = errors.New("quiz generation already in progress")

	// Quiz instance
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuizAlreadyGraded = errors.New("quiz already graded")
	ErrQuizNotGraded     = errors.New("quiz not graded yet")
)

// User-facing messages
const (
	MsgNoDocument         = "Please upload a document first to generate quiz questions."
	MsgGenerationFailed   = "Failed to generate quiz"
	MsgGenerationRetry    = "Failed to generate quiz. Please try again."
	MsgRequestInFlight    = "A quiz is already being generated. Please wait."
	MsgQuizAlreadyGraded  = "This quiz has already been submitted."
	MsgQuizReady          = "Your quiz is ready!"
	MsgStyleUpdated       = "Learning style updated."
	MsgBackendUnavailable = "Warning: Could not connect to server. Please check your connection."
	MsgModelUnavailable   = "Warning: AI model not available. Some features may be limited."
)

// ===== CUSTOM ERROR TYPES =====

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// GenerationFailure is the single failure shape of quiz generation: server
// reported errors, transport errors and malformed payloads all end up here.
type GenerationFailure struct {
	Message string
	Cause   error
}

func (e *GenerationFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("quiz generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("quiz generation failed: %s", e.Message)
}

func (e *GenerationFailure) Unwrap() error {
	return e.Cause
}

// UnansweredError aborts grading. Questions holds 1-based question numbers.
type UnansweredError struct {
	Questions []int
}

func (e *UnansweredError) Error() string {
	return "unanswered questions: " + joinNumbers(e.Questions)
}

// Notice renders the message shown to the user, e.g. "Please answer questions 1, 3".
func (e *UnansweredError) Notice() string {
	noun := "question"
	if len(e.Questions) > 1 {
		noun = "questions"
	}
	return fmt.Sprintf("Please answer %s %s", noun, joinNumbers(e.Questions))
}

func joinNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func IsGenerationFailure(err error) bool {
	var gf *GenerationFailure
	return errors.As(err, &gf)
}

func IsUnanswered(err error) bool {
	var ue *UnansweredError
	return errors.As(err, &ue)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuizNotFound)
}

// IsConflict covers triggers that are rejected because of the current state.
func IsConflict(err error) bool {
	return errors.Is(err, ErrRequestInFlight) ||
		errors.Is(err, ErrQuizAlreadyGraded) ||
		errors.Is(err, ErrQuizNotGraded)
}

// UserMessage maps an error to the text of the toast shown for it.
func UserMessage(err error) string {
	var gf *GenerationFailure
	var ue *UnansweredError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoDocument):
		return MsgNoDocument
	case errors.Is(err, ErrRequestInFlight):
		return MsgRequestInFlight
	case errors.Is(err, ErrQuizAlreadyGraded):
		return MsgQuizAlreadyGraded
	case errors.As(err, &gf):
		return gf.Message
	case errors.As(err, &ue):
		return ue.Notice()
	default:
		return err.Error()
	}
}
