package services

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Defaults(t *testing.T) {
	s := NewSession("s1")

	assert.Equal(t, "s1", s.ID())
	assert.Equal(t, models.StyleBlended, s.LearningStyle())
	assert.Equal(t, models.GenerationIdle, s.GenerationState())
	assert.False(t, s.Busy())

	_, ok := s.ActiveDocument()
	assert.False(t, ok)
	_, ok = s.CurrentQuiz()
	assert.False(t, ok)
}

func TestSession_Setters(t *testing.T) {
	s := NewSession("s1")

	require.NoError(t, s.SetLearningStyle(models.StyleHandsOn))
	assert.Equal(t, models.StyleHandsOn, s.LearningStyle())

	err := s.SetLearningStyle("kinesthetic")
	assert.True(t, IsValidation(err))
	assert.Equal(t, models.StyleHandsOn, s.LearningStyle())

	require.NoError(t, s.SetActiveDocument("  doc-9 "))
	doc, ok := s.ActiveDocument()
	assert.True(t, ok)
	assert.Equal(t, "doc-9", doc)

	assert.True(t, IsValidation(s.SetActiveDocument("   ")))
	doc, _ = s.ActiveDocument()
	assert.Equal(t, "doc-9", doc)
}

func TestSession_GenerationStateMachine(t *testing.T) {
	s := NewSession("s1")

	require.NoError(t, s.beginGeneration())
	assert.Equal(t, models.GenerationRequesting, s.GenerationState())
	assert.ErrorIs(t, s.beginGeneration(), ErrRequestInFlight)

	s.finishGeneration(nil, &GenerationFailure{Message: MsgGenerationFailed})
	assert.Equal(t, models.GenerationFailed, s.GenerationState())

	require.NoError(t, s.beginGeneration())
	quiz := NewQuizPresenter(validator.New()).Render("doc-1", twoQuestionSet(), models.StyleBlended)
	s.finishGeneration(quiz, nil)
	assert.Equal(t, models.GenerationReady, s.GenerationState())

	current, ok := s.CurrentQuiz()
	require.True(t, ok)
	assert.Same(t, quiz, current)

	found, err := s.Quiz(quiz.ID())
	require.NoError(t, err)
	assert.Same(t, quiz, found)

	_, err = s.Quiz("nope")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestSession_Progress(t *testing.T) {
	s := NewSession("s1")

	s.ShowProgress()
	assert.True(t, s.Busy())
	s.HideProgress()
	assert.False(t, s.Busy())

	s.HideProgress()
	assert.False(t, s.Busy())
}

func TestSessionRegistry(t *testing.T) {
	clock := newFakeClock()
	r := NewSessionRegistry()
	r.now = clock.Now

	s1, created := r.GetOrCreate("")
	assert.True(t, created)
	assert.NotEmpty(t, s1.ID())

	again, created := r.GetOrCreate(s1.ID())
	assert.False(t, created)
	assert.Same(t, s1, again)

	unknown, created := r.GetOrCreate("forged-id")
	assert.True(t, created)
	assert.NotEqual(t, "forged-id", unknown.ID())
	assert.Equal(t, 2, r.Len())

	clock.Advance(90 * time.Minute)
	r.GetOrCreate(s1.ID())
	clock.Advance(45 * time.Minute)

	assert.Equal(t, 1, r.Prune(2*time.Hour))
	_, ok := r.Get(s1.ID())
	assert.True(t, ok)
	_, ok = r.Get(unknown.ID())
	assert.False(t, ok)
}
