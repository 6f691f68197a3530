package services

import (
	"testing"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPresenter(clock *fakeClock) *QuizPresenter {
	p := NewQuizPresenter(validator.New())
	p.now = clock.Now
	return p
}

func selectedOptions(view models.QuizView, question int) []int {
	var selected []int
	for _, opt := range view.Questions[question].Options {
		if opt.Selected {
			selected = append(selected, opt.Index)
		}
	}
	return selected
}

func TestQuizPresenter_RenderStylePresentation(t *testing.T) {
	p := newTestPresenter(newFakeClock())

	tests := []struct {
		style         models.LearningStyle
		expectedTitle string
		expectedClass string
	}{
		{models.StyleVisual, "📊 Visual Learning Quiz", "visual-quiz"},
		{models.StyleAuditory, "🎧 Auditory Learning Quiz", "auditory-quiz"},
		{models.StyleHandsOn, "🛠️ Practical Application Quiz", "handson-quiz"},
		{models.StyleReading, "📚 Reading Comprehension Quiz", "reading-quiz"},
		{models.StyleBlended, "Test Your Knowledge", "blended-quiz"},
		{"kinesthetic", "Test Your Knowledge", "blended-quiz"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			view := p.Render("doc-1", twoQuestionSet(), tt.style).View()

			assert.Equal(t, tt.expectedTitle, view.Title)
			assert.Equal(t, tt.expectedClass, view.StyleClass)
		})
	}
}

func TestQuizPresenter_Render(t *testing.T) {
	clock := newFakeClock()
	p := newTestPresenter(clock)

	questions := twoQuestionSet()
	quiz := p.Render("doc-1", questions, models.StyleAuditory)

	assert.NotEmpty(t, quiz.ID())
	assert.Equal(t, "doc-1", quiz.DocumentID())
	assert.Equal(t, clock.Now(), quiz.CreatedAt())
	assert.Empty(t, quiz.Answers())
	assert.False(t, quiz.Graded())

	// caller mutations do not leak into the instance
	questions[0].Options[0] = "Purple"
	assert.Equal(t, "Blue", quiz.Questions()[0].Options[0])

	view := quiz.View()
	assert.Equal(t, "🎧 Auditory Learning Quiz", view.Title)
	assert.Equal(t, "auditory-quiz", view.StyleClass)
	assert.False(t, view.SubmitDisabled)
	assert.False(t, view.Result.Visible)
	require.Len(t, view.Questions, 2)
	assert.Equal(t, 2, view.Questions[1].Number)
	assert.Equal(t, "q1_opt2", view.Questions[1].Options[2].InputID)
	assert.Equal(t, "question_1", view.Questions[1].Options[2].InputName)
}

func TestQuizInstance_Select(t *testing.T) {
	p := newTestPresenter(newFakeClock())
	quiz := p.Render("doc-1", twoQuestionSet(), models.StyleBlended)

	require.NoError(t, quiz.Select(0, 0))
	require.NoError(t, quiz.Select(0, 1))

	assert.Equal(t, models.AnswerState{0: 1}, quiz.Answers())
	assert.Equal(t, []int{1}, selectedOptions(quiz.View(), 0))
	assert.Empty(t, selectedOptions(quiz.View(), 1))

	t.Run("invalid indices", func(t *testing.T) {
		err := quiz.Select(5, 0)
		assert.True(t, IsValidation(err))
		err = quiz.Select(0, 3)
		assert.True(t, IsValidation(err))
		assert.Equal(t, models.AnswerState{0: 1}, quiz.Answers())
	})
}

func TestQuizInstance_Submit(t *testing.T) {
	t.Run("unanswered keeps quiz editable", func(t *testing.T) {
		p := newTestPresenter(newFakeClock())
		quiz := p.Render("doc-1", twoQuestionSet(), models.StyleBlended)
		require.NoError(t, quiz.Select(0, 0))

		_, err := quiz.Submit()
		var unanswered *UnansweredError
		require.ErrorAs(t, err, &unanswered)
		assert.Equal(t, []int{2}, unanswered.Questions)

		_, graded := quiz.Result()
		assert.False(t, graded)
		view := quiz.View()
		assert.False(t, view.SubmitDisabled)
		assert.False(t, view.Result.Visible)
		for _, opt := range view.Questions[0].Options {
			assert.False(t, opt.Disabled)
		}

		require.NoError(t, quiz.Select(1, 1))
		result, err := quiz.Submit()
		require.NoError(t, err)
		assert.Equal(t, 2, result.CorrectCount)
	})

	t.Run("graded quiz is terminal", func(t *testing.T) {
		clock := newFakeClock()
		p := newTestPresenter(clock)
		quiz := p.Render("doc-1", twoQuestionSet(), models.StyleBlended)
		require.NoError(t, quiz.Select(0, 1))
		require.NoError(t, quiz.Select(1, 1))

		result, err := quiz.Submit()
		require.NoError(t, err)
		assert.Equal(t, 1, result.CorrectCount)
		assert.Equal(t, models.BandBad, result.Band)
		assert.Equal(t, clock.Now(), result.GradedAt)

		clock.Advance(1)
		again, err := quiz.Submit()
		assert.ErrorIs(t, err, ErrQuizAlreadyGraded)
		assert.Equal(t, result, again)

		assert.ErrorIs(t, quiz.Select(0, 0), ErrQuizAlreadyGraded)
		assert.Equal(t, models.AnswerState{0: 1, 1: 1}, quiz.Answers())

		stored, ok := quiz.Result()
		require.True(t, ok)
		assert.Equal(t, result, stored)
	})
}

func TestRenderQuiz_Graded(t *testing.T) {
	questions := twoQuestionSet()
	answers := models.AnswerState{0: 2, 1: 1}
	result, err := GradeQuiz(questions, answers)
	require.NoError(t, err)

	view := RenderQuiz("quiz-1", models.StyleVisual, questions, answers, result)

	assert.True(t, view.SubmitDisabled)
	assert.True(t, view.Result.Visible)
	assert.Equal(t, "You scored 1/2 (50%)", view.Result.ScoreLine)
	assert.Equal(t, "quiz-result bad", view.Result.Classes())

	q1 := view.Questions[0].Options
	assert.True(t, q1[0].Correct)
	assert.False(t, q1[0].Selected)
	assert.True(t, q1[2].Incorrect)
	assert.Equal(t, "quiz-option selected incorrect", q1[2].Classes())
	assert.False(t, q1[1].Correct || q1[1].Incorrect)

	q2 := view.Questions[1].Options
	assert.True(t, q2[1].Correct)
	assert.False(t, q2[1].Incorrect)
	for _, opt := range append(q1, q2...) {
		assert.True(t, opt.Disabled)
	}

	require.NotNil(t, view.Result.Breakdown)
	assert.Equal(t, 1, view.Result.Breakdown.Correct)
	assert.Equal(t, 1, view.Result.Breakdown.Incorrect)
	assert.Equal(t, "Needs Review", view.Result.Breakdown.Label)
}

func TestRenderQuiz_BreakdownOnlyForVisual(t *testing.T) {
	questions := twoQuestionSet()
	answers := models.AnswerState{0: 0, 1: 1}
	result, err := GradeQuiz(questions, answers)
	require.NoError(t, err)

	for _, style := range models.LearningStyles {
		view := RenderQuiz("quiz-1", style, questions, answers, result)
		if style == models.StyleVisual {
			assert.NotNil(t, view.Result.Breakdown, style)
		} else {
			assert.Nil(t, view.Result.Breakdown, style)
		}
		assert.Equal(t, result.Band, view.Result.Band, style)
	}
}

func TestRenderQuiz_Pure(t *testing.T) {
	questions := twoQuestionSet()
	answers := models.AnswerState{0: 1}

	first := RenderQuiz("quiz-1", models.StyleReading, questions, answers, nil)
	second := RenderQuiz("quiz-1", models.StyleReading, questions, answers, nil)

	assert.Equal(t, first, second)
	assert.Equal(t, models.AnswerState{0: 1}, answers)
	assert.Equal(t, "📚 Reading Comprehension Quiz", first.Title)
}
