package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/learning-assistant/internal/events"
	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_HandleEvent(t *testing.T) {
	svc := NewAnalyticsService()
	ctx := context.Background()

	req := models.GenerateQuizRequest{DocumentID: "doc-1", LearningStyle: models.StyleVisual, QuestionCount: 5}
	evts := []*events.Event{
		events.NewQuizRequestedEvent("s1", req),
		events.NewQuizGeneratedEvent("s1", "q1", "doc-1", models.StyleVisual, 5),
		events.NewQuizRequestedEvent("s2", req),
		events.NewQuizGenerationFailedEvent("s2", "doc-1", "timeout"),
		events.NewQuizGradedEvent("s1", "q1", models.StyleVisual, models.QuizResult{CorrectCount: 4, Total: 5, Percentage: 80, Band: models.BandGood}),
		events.NewQuizGradedEvent("s3", "q2", models.StyleReading, models.QuizResult{CorrectCount: 2, Total: 5, Percentage: 40, Band: models.BandBad}),
		events.NewNotificationShownEvent(models.Notification{ID: "n1", SessionID: "s1", Message: "hi"}),
	}
	for _, e := range evts {
		require.NoError(t, svc.HandleEvent(ctx, e))
	}

	usage := svc.Usage()
	assert.Equal(t, 2, usage.QuizzesRequested)
	assert.Equal(t, 1, usage.QuizzesGenerated)
	assert.Equal(t, 1, usage.GenerationFailures)
	assert.Equal(t, 2, usage.QuizzesGraded)
	assert.InDelta(t, 60.0, usage.AverageScore, 0.001)
	assert.Equal(t, map[models.Band]int{models.BandGood: 1, models.BandBad: 1}, usage.BandDistribution)
	assert.Equal(t, 2, usage.StyleDistribution[models.StyleVisual])
	require.NotNil(t, usage.LastEventAt)

	// snapshot is detached
	usage.BandDistribution[models.BandAverage] = 9
	assert.NotContains(t, svc.Usage().BandDistribution, models.BandAverage)
}

func TestAnalyticsService_DecodedEvents(t *testing.T) {
	svc := NewAnalyticsService()
	event := &events.Event{
		Type: events.EventQuizGraded,
		Data: map[string]interface{}{"band": "average", "percentage": 66.7, "correct_count": 2, "total": 3},
	}

	require.NoError(t, svc.HandleEvent(context.Background(), event))
	assert.Equal(t, 1, svc.Usage().BandDistribution[models.BandAverage])
}
