package validator

import (
	"fmt"

	"github.com/SAP-F-2025/learning-assistant/internal/errors"
	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/go-playground/validator/v10"
)

// QuizValidator checks the rules struct tags cannot express, such as
// correct_answer pointing into options.
type QuizValidator struct {
	structValidator *validator.Validate
}

func NewQuizValidator(structValidator *validator.Validate) *QuizValidator {
	return &QuizValidator{structValidator: structValidator}
}

// ValidateQuestion validates a single question. index is zero-based and only
// used to build field paths.
func (v *QuizValidator) ValidateQuestion(index int, q models.Question) ValidationErrors {
	var errs ValidationErrors
	prefix := fmt.Sprintf("questions[%d]", index)

	if err := v.structValidator.Struct(q); err != nil {
		for _, e := range errors.ToValidationErrors(err) {
			e.Field = prefix + "." + e.Field
			errs = append(errs, e)
		}
	}

	if len(q.Options) > 0 && (q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options)) {
		errs = append(errs, *errors.NewValidationErrorWithRule(
			prefix+".correct_answer",
			fmt.Sprintf("must index one of the %d options", len(q.Options)),
			"option_index",
			q.CorrectAnswer,
		))
	}

	return errs
}

// ValidateQuestionSet validates every question of a generated set. An empty
// set is rejected since nothing could be rendered.
func (v *QuizValidator) ValidateQuestionSet(questions models.QuestionSet) error {
	if len(questions) == 0 {
		return ValidationErrors{*errors.NewValidationErrorWithRule("questions", "must contain at least 1 question", "min", 0)}
	}

	var errs ValidationErrors
	for i, q := range questions {
		errs = append(errs, v.ValidateQuestion(i, q)...)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateSelection checks that an option index is valid for the question.
func (v *QuizValidator) ValidateSelection(questions models.QuestionSet, question, option int) error {
	if question < 0 || question >= len(questions) {
		return errors.NewValidationErrorWithRule("question", fmt.Sprintf("must be between 0 and %d", len(questions)-1), "question_index", question)
	}
	if option < 0 || option >= len(questions[question].Options) {
		return errors.NewValidationErrorWithRule("option", fmt.Sprintf("must be between 0 and %d", len(questions[question].Options)-1), "option_index", option)
	}
	return nil
}
