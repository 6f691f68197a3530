package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsume(t *testing.T) {
	pub := NewGoChannelEventPublisher(PublisherConfig{TopicName: "quiz-events", Logger: testLogger()})
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pub.Subscribe(ctx)
	require.NoError(t, err)

	var mu sync.Mutex
	var received []QuizGradedEvent
	done := make(chan struct{})

	go func() {
		defer close(done)
		Consume(ctx, messages, testLogger(), LogHandler(testLogger()), func(ctx context.Context, event *Event) error {
			var data QuizGradedEvent
			if err := event.DecodeData(&data); err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			received = append(received, data)
			if len(received) == 2 {
				cancel()
			}
			return nil
		})
	}()

	for _, correct := range []int{1, 2} {
		result := models.QuizResult{CorrectCount: correct, Total: 2, Percentage: float64(correct) * 50, Band: models.BandBad}
		require.NoError(t, pub.PublishEvent(context.Background(), NewQuizGradedEvent("s1", "q1", models.StyleBlended, result)))
	}

	<-done
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	counts := []int{received[0].CorrectCount, received[1].CorrectCount}
	assert.ElementsMatch(t, []int{1, 2}, counts)
}

func TestEvent_DecodeData(t *testing.T) {
	event := NewQuizGenerationFailedEvent("s1", "doc-1", "timeout")

	var data QuizGenerationFailedEvent
	require.NoError(t, event.DecodeData(&data))
	assert.Equal(t, "doc-1", data.DocumentID)
	assert.Equal(t, "timeout", data.Reason)
}
