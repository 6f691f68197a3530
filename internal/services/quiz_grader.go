package services

import (
	"github.com/SAP-F-2025/learning-assistant/internal/models"
)

// UnansweredQuestions returns the 1-based numbers of questions without a
// valid selection.
func UnansweredQuestions(questions models.QuestionSet, answers models.AnswerState) []int {
	var missing []int
	for i, q := range questions {
		selected, ok := answers[i]
		if !ok || selected < 0 || selected >= len(q.Options) {
			missing = append(missing, i+1)
		}
	}
	return missing
}

// GradeQuiz grades a complete answer state. It never mutates its inputs and
// returns *UnansweredError when any question lacks a selection.
func GradeQuiz(questions models.QuestionSet, answers models.AnswerState) (*models.QuizResult, error) {
	if missing := UnansweredQuestions(questions, answers); len(missing) > 0 {
		return nil, &UnansweredError{Questions: missing}
	}

	result := &models.QuizResult{
		Total:              len(questions),
		PerQuestionCorrect: make([]bool, len(questions)),
	}
	for i, q := range questions {
		if answers[i] == q.CorrectAnswer {
			result.PerQuestionCorrect[i] = true
			result.CorrectCount++
		}
	}

	if result.Total > 0 {
		result.Percentage = float64(result.CorrectCount) / float64(result.Total) * 100
	}
	result.Band = BandFor(result.Percentage)
	result.Message = result.Band.Message()

	return result, nil
}

// BandFor maps a percentage to its score band.
func BandFor(percentage float64) models.Band {
	switch {
	case percentage >= models.GoodBandThreshold:
		return models.BandGood
	case percentage >= models.AverageBandThreshold:
		return models.BandAverage
	default:
		return models.BandBad
	}
}

// VisualBreakdownFor builds the extra panel shown to visual learners.
func VisualBreakdownFor(result models.QuizResult) *models.VisualBreakdown {
	return &models.VisualBreakdown{
		Correct:   result.CorrectCount,
		Incorrect: result.IncorrectCount(),
		Label:     result.Band.Label(),
		Color:     result.Band.Color(),
	}
}

// OptionMarks reports how an option is marked once the quiz is graded: the
// correct option is always marked correct, a differing user choice incorrect.
func OptionMarks(q models.Question, selected int, answered bool, option int) (correct, incorrect bool) {
	if option == q.CorrectAnswer {
		return true, false
	}
	return false, answered && option == selected
}
