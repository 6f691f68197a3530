package models

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 50
)

// Question is a single-choice question as produced by the generation service.
type Question struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer" validate:"min=0"`
}

// QuestionSet may be shorter than the requested question count.
type QuestionSet []Question

// AnswerState maps a question index to the selected option index.
type AnswerState map[int]int

func (a AnswerState) Clone() AnswerState {
	out := make(AnswerState, len(a))
	for q, opt := range a {
		out[q] = opt
	}
	return out
}

type Band string

const (
	BandGood    Band = "good"
	BandAverage Band = "average"
	BandBad     Band = "bad"
)

// Score band thresholds in percent.
const (
	GoodBandThreshold    = 80.0
	AverageBandThreshold = 60.0
)

var bandMessages = map[Band]string{
	BandGood:    "Great job! You have a solid understanding of the material.",
	BandAverage: "Good effort! You're on the right track, but might need to review some concepts.",
	BandBad:     "Keep practicing! Consider reviewing the material again.",
}

var bandLabels = map[Band]string{
	BandGood:    "Strong Understanding",
	BandAverage: "Good Progress",
	BandBad:     "Needs Review",
}

var bandColors = map[Band]string{
	BandGood:    "#10b981",
	BandAverage: "#f59e0b",
	BandBad:     "#ef4444",
}

func (b Band) Message() string { return bandMessages[b] }
func (b Band) Label() string   { return bandLabels[b] }
func (b Band) Color() string   { return bandColors[b] }

// QuizResult is computed once when a quiz is submitted.
type QuizResult struct {
	CorrectCount       int       `json:"correct_count"`
	Total              int       `json:"total"`
	PerQuestionCorrect []bool    `json:"per_question_correct"`
	Percentage         float64   `json:"percentage"`
	Band               Band      `json:"band"`
	Message            string    `json:"message"`
	GradedAt           time.Time `json:"graded_at"`
}

func (r QuizResult) IncorrectCount() int {
	return r.Total - r.CorrectCount
}

func (r QuizResult) RoundedPercentage() int {
	return int(math.Round(r.Percentage))
}

func (r QuizResult) ScoreLine() string {
	return fmt.Sprintf("You scored %d/%d (%d%%)", r.CorrectCount, r.Total, r.RoundedPercentage())
}

// GenerationState tracks quiz generation for one session.
type GenerationState string

const (
	GenerationIdle       GenerationState = "idle"
	GenerationRequesting GenerationState = "requesting"
	GenerationReady      GenerationState = "ready"
	GenerationFailed     GenerationState = "failed"
)

// ===== BACKEND WIRE TYPES =====

type GenerateQuizRequest struct {
	DocumentID    string        `json:"document_id" validate:"required"`
	LearningStyle LearningStyle `json:"learning_style" validate:"required,learning_style"`
	QuestionCount int           `json:"question_count" validate:"required,min=1,max=50"`
}

type GenerateQuizResponse struct {
	Success   bool        `json:"success"`
	Questions QuestionSet `json:"questions,omitempty"`
	Error     string      `json:"error,omitempty"`
}

type HealthStatus struct {
	Status          string  `json:"status"`
	Timestamp       float64 `json:"timestamp"`
	GeminiAvailable bool    `json:"gemini_available"`
	TTSAvailable    bool    `json:"tts_available"`
}

type Document struct {
	ID         string  `json:"id"`
	Filename   string  `json:"filename"`
	UploadTime float64 `json:"upload_time"`
}

type DocumentsResponse struct {
	Documents []Document `json:"documents"`
	Error     string     `json:"error,omitempty"`
}

type UserPreferences struct {
	LearningStyle      string `json:"learningStyle"`
	ChatbotInteraction string `json:"chatbotInteraction,omitempty"`
	StruggleHelp       string `json:"struggleHelp,omitempty"`
	StudyDuration      string `json:"studyDuration,omitempty"`
}

type UserPreferencesResponse struct {
	Preferences *UserPreferences `json:"preferences"`
	Error       string           `json:"error,omitempty"`
}

type SetLearningStyleRequest struct {
	Style LearningStyle `json:"style" validate:"required,learning_style"`
}

type SetLearningStyleResponse struct {
	Success       bool          `json:"success"`
	LearningStyle LearningStyle `json:"learning_style"`
	TTSAvailable  *bool         `json:"tts_available"`
	Error         string        `json:"error,omitempty"`
}
