package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/client"
	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockBackendClient is a mock implementation of client.BackendClient
type MockBackendClient struct {
	mock.Mock
}

var _ client.BackendClient = (*MockBackendClient)(nil)

func (m *MockBackendClient) GenerateQuiz(ctx context.Context, req models.GenerateQuizRequest) (*models.GenerateQuizResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GenerateQuizResponse), args.Error(1)
}

func (m *MockBackendClient) HealthCheck(ctx context.Context) (*models.HealthStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HealthStatus), args.Error(1)
}

func (m *MockBackendClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *MockBackendClient) SetLearningStyle(ctx context.Context, style models.LearningStyle) (*models.SetLearningStyleResponse, error) {
	args := m.Called(ctx, style)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SetLearningStyleResponse), args.Error(1)
}

func (m *MockBackendClient) UserPreferences(ctx context.Context) (*models.UserPreferences, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPreferences), args.Error(1)
}

// recordingProgress counts indicator transitions.
type recordingProgress struct {
	shown  int
	hidden int
}

func (p *recordingProgress) ShowProgress() { p.shown++ }
func (p *recordingProgress) HideProgress() { p.hidden++ }

// fakeClock is advanced manually by tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time            { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// twoQuestionSet has Q1 correct at 0 and Q2 correct at 1.
func twoQuestionSet() models.QuestionSet {
	return models.QuestionSet{
		{Question: "What color is the sky?", Options: []string{"Blue", "Green", "Red"}, CorrectAnswer: 0},
		{Question: "2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswer: 1},
	}
}
