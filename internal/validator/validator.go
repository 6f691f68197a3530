package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator combines struct-tag validation with quiz-specific rules.
type Validator struct {
	structValidator *validator.Validate
	quizValidator   *QuizValidator
}

func New() *Validator {
	structValidator := validator.New()

	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		quizValidator:   NewQuizValidator(structValidator),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate runs struct validation and converts failures to ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Quiz returns the quiz validator
func (v *Validator) Quiz() *QuizValidator {
	return v.quizValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("learning_style", validateLearningStyle)

	// Report json names in errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateLearningStyle(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, style := range models.LearningStyles {
		if string(style) == value {
			return true
		}
	}
	return false
}
