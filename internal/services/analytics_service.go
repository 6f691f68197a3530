package services

import (
	"context"
	"sync"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/events"
	"github.com/SAP-F-2025/learning-assistant/internal/models"
)

// AnalyticsService aggregates quiz lifecycle events into usage statistics.
type AnalyticsService interface {
	HandleEvent(ctx context.Context, event *events.Event) error
	Usage() UsageStatistics
}

// UsageStatistics summarises quiz activity since process start.
type UsageStatistics struct {
	QuizzesRequested   int                          `json:"quizzes_requested"`
	QuizzesGenerated   int                          `json:"quizzes_generated"`
	GenerationFailures int                          `json:"generation_failures"`
	QuizzesGraded      int                          `json:"quizzes_graded"`
	AverageScore       float64                      `json:"average_score"`
	BandDistribution   map[models.Band]int          `json:"band_distribution"`
	StyleDistribution  map[models.LearningStyle]int `json:"style_distribution"`
	LastEventAt        *time.Time                   `json:"last_event_at,omitempty"`
}

type analyticsService struct {
	mu    sync.Mutex
	stats UsageStatistics
	total float64
}

func NewAnalyticsService() AnalyticsService {
	return &analyticsService{
		stats: UsageStatistics{
			BandDistribution:  make(map[models.Band]int),
			StyleDistribution: make(map[models.LearningStyle]int),
		},
	}
}

// HandleEvent is an events.Handler. Unknown event types are ignored.
func (s *analyticsService) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Type {
	case events.EventQuizRequested:
		var data events.QuizRequestedEvent
		if err := event.DecodeData(&data); err != nil {
			return err
		}
		s.record(event, func(stats *UsageStatistics) {
			stats.QuizzesRequested++
			stats.StyleDistribution[data.LearningStyle]++
		})
	case events.EventQuizGenerated:
		s.record(event, func(stats *UsageStatistics) { stats.QuizzesGenerated++ })
	case events.EventQuizGenerationFailed:
		s.record(event, func(stats *UsageStatistics) { stats.GenerationFailures++ })
	case events.EventQuizGraded:
		var data events.QuizGradedEvent
		if err := event.DecodeData(&data); err != nil {
			return err
		}
		s.record(event, func(stats *UsageStatistics) {
			stats.QuizzesGraded++
			stats.BandDistribution[data.Band]++
			s.total += data.Percentage
			stats.AverageScore = s.total / float64(stats.QuizzesGraded)
		})
	}
	return nil
}

func (s *analyticsService) record(event *events.Event, apply func(stats *UsageStatistics)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(&s.stats)
	at := event.Timestamp
	s.stats.LastEventAt = &at
}

// Usage returns a copy of the current statistics.
func (s *analyticsService) Usage() UsageStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.stats
	out.BandDistribution = make(map[models.Band]int, len(s.stats.BandDistribution))
	for band, n := range s.stats.BandDistribution {
		out.BandDistribution[band] = n
	}
	out.StyleDistribution = make(map[models.LearningStyle]int, len(s.stats.StyleDistribution))
	for style, n := range s.stats.StyleDistribution {
		out.StyleDistribution[style] = n
	}
	return out
}
