package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/validator"
	"github.com/google/uuid"
)

// QuizInstance is one rendered quiz. It exclusively owns its AnswerState and,
// once submitted, its QuizResult. Grading is one-shot: after a successful
// submit every mutation is rejected with ErrQuizAlreadyGraded.
type QuizInstance struct {
	mu sync.Mutex

	id         string
	documentID string
	style      models.LearningStyle
	questions  models.QuestionSet
	answers    models.AnswerState
	result     *models.QuizResult
	createdAt  time.Time

	validator *validator.QuizValidator
	now       func() time.Time
}

// QuizPresenter turns generated question sets into quiz instances.
type QuizPresenter struct {
	validator *validator.QuizValidator
	now       func() time.Time
}

func NewQuizPresenter(v *validator.Validator) *QuizPresenter {
	return &QuizPresenter{validator: v.Quiz(), now: time.Now}
}

// Render binds a question set to a fresh instance with an empty AnswerState.
// The question set is copied so later changes by the caller have no effect.
func (p *QuizPresenter) Render(documentID string, questions models.QuestionSet, style models.LearningStyle) *QuizInstance {
	owned := make(models.QuestionSet, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		owned[i] = q
	}

	return &QuizInstance{
		id:         uuid.NewString(),
		documentID: documentID,
		style:      style,
		questions:  owned,
		answers:    models.AnswerState{},
		createdAt:  p.now(),
		validator:  p.validator,
		now:        p.now,
	}
}

func (q *QuizInstance) ID() string                          { return q.id }
func (q *QuizInstance) DocumentID() string                  { return q.documentID }
func (q *QuizInstance) LearningStyle() models.LearningStyle { return q.style }
func (q *QuizInstance) CreatedAt() time.Time                { return q.createdAt }

func (q *QuizInstance) Questions() models.QuestionSet {
	return q.questions
}

// Answers returns a copy of the current selections.
func (q *QuizInstance) Answers() models.AnswerState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.answers.Clone()
}

// Result returns the graded result, if any.
func (q *QuizInstance) Result() (models.QuizResult, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.result == nil {
		return models.QuizResult{}, false
	}
	return *q.result, true
}

func (q *QuizInstance) Graded() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.result != nil
}

// Select records option as the single selection for question, replacing any
// earlier selection for that question.
func (q *QuizInstance) Select(question, option int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.result != nil {
		return ErrQuizAlreadyGraded
	}
	if err := q.validator.ValidateSelection(q.questions, question, option); err != nil {
		return err
	}

	q.answers[question] = option
	return nil
}

// Submit grades the quiz. Unanswered questions abort grading and leave the
// instance editable; a second submit after success is rejected.
func (q *QuizInstance) Submit() (models.QuizResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.result != nil {
		return *q.result, ErrQuizAlreadyGraded
	}

	result, err := GradeQuiz(q.questions, q.answers)
	if err != nil {
		return models.QuizResult{}, err
	}
	result.GradedAt = q.now()
	q.result = result

	return *result, nil
}

// View renders the current state of the instance.
func (q *QuizInstance) View() models.QuizView {
	q.mu.Lock()
	defer q.mu.Unlock()
	return RenderQuiz(q.id, q.style, q.questions, q.answers, q.result)
}

// RenderQuiz is a pure function from quiz state to its view description.
func RenderQuiz(id string, style models.LearningStyle, questions models.QuestionSet, answers models.AnswerState, result *models.QuizResult) models.QuizView {
	presentation := style.QuizPresentation()
	graded := result != nil

	view := models.QuizView{
		ID:             id,
		LearningStyle:  style,
		Title:          presentation.Title,
		StyleClass:     presentation.CSSClass,
		Questions:      make([]models.QuestionView, len(questions)),
		SubmitDisabled: graded,
	}

	for i, q := range questions {
		selected, answered := answers[i]
		qv := models.QuestionView{
			Index:   i,
			Number:  i + 1,
			Text:    q.Question,
			Options: make([]models.OptionView, len(q.Options)),
		}
		for j, text := range q.Options {
			ov := models.OptionView{
				Index:     j,
				Text:      text,
				InputID:   fmt.Sprintf("q%d_opt%d", i, j),
				InputName: fmt.Sprintf("question_%d", i),
				Selected:  answered && selected == j,
				Disabled:  graded,
			}
			if graded {
				ov.Correct, ov.Incorrect = OptionMarks(q, selected, answered, j)
			}
			qv.Options[j] = ov
		}
		view.Questions[i] = qv
	}

	if graded {
		view.Result = models.ResultView{
			Visible:   true,
			Band:      result.Band,
			ScoreLine: result.ScoreLine(),
			Message:   result.Message,
		}
		if style == models.StyleVisual {
			view.Result.Breakdown = VisualBreakdownFor(*result)
		}
	}

	return view
}
