package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/events"
	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardSlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotificationService_Notify(t *testing.T) {
	clock := newFakeClock()
	publisher := events.NewMockEventPublisher(discardSlog())
	svc := newNotificationService(5*time.Second, publisher, utils.NewNopLogger(), clock.Now)
	ctx := context.Background()

	n, err := svc.Notify(ctx, "s1", models.NotificationError, MsgNoDocument)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(5*time.Second), n.ExpiresAt)

	current, ok := svc.Current("s1")
	require.True(t, ok)
	assert.Equal(t, MsgNoDocument, current.Message)

	_, ok = svc.Current("s2")
	assert.False(t, ok)

	shown := publisher.EventsOfType(events.EventNotificationShown)
	require.Len(t, shown, 1)
	assert.Equal(t, "s1", shown[0].SessionID)

	t.Run("new toast replaces the previous one", func(t *testing.T) {
		_, err := svc.Notify(ctx, "s1", models.NotificationSuccess, MsgQuizReady)
		require.NoError(t, err)

		current, ok := svc.Current("s1")
		require.True(t, ok)
		assert.Equal(t, MsgQuizReady, current.Message)
		assert.Equal(t, models.NotificationSuccess, current.Type)
	})

	t.Run("expires after display duration", func(t *testing.T) {
		clock.Advance(5 * time.Second)
		_, ok := svc.Current("s1")
		assert.False(t, ok)
	})

	t.Run("blank message rejected", func(t *testing.T) {
		_, err := svc.Notify(ctx, "s1", models.NotificationInfo, "  ")
		assert.True(t, IsValidation(err))
	})
}

func TestNotificationService_DismissAndPrune(t *testing.T) {
	clock := newFakeClock()
	svc := newNotificationService(time.Second, events.NewMockEventPublisher(discardSlog()), utils.NewNopLogger(), clock.Now)
	ctx := context.Background()

	_, err := svc.Notify(ctx, "s1", models.NotificationInfo, "one")
	require.NoError(t, err)
	_, err = svc.Notify(ctx, "s2", models.NotificationInfo, "two")
	require.NoError(t, err)

	svc.Dismiss("s1")
	_, ok := svc.Current("s1")
	assert.False(t, ok)

	assert.Equal(t, 0, svc.Prune())
	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, svc.Prune())
}
