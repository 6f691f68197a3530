package models

import "fmt"

type LearningStyle string

const (
	StyleVisual   LearningStyle = "visual"
	StyleAuditory LearningStyle = "auditory"
	StyleHandsOn  LearningStyle = "hands-on"
	StyleReading  LearningStyle = "reading"
	StyleBlended  LearningStyle = "blended"

	DefaultLearningStyle = StyleBlended
)

// LearningStyles lists every supported style in display order.
var LearningStyles = []LearningStyle{
	StyleVisual,
	StyleAuditory,
	StyleHandsOn,
	StyleReading,
	StyleBlended,
}

// QuizPresentation is the style-specific chrome of a rendered quiz.
type QuizPresentation struct {
	Title    string `json:"title"`
	CSSClass string `json:"css_class"`
}

var quizPresentations = map[LearningStyle]QuizPresentation{
	StyleVisual:   {Title: "📊 Visual Learning Quiz", CSSClass: "visual-quiz"},
	StyleAuditory: {Title: "🎧 Auditory Learning Quiz", CSSClass: "auditory-quiz"},
	StyleHandsOn:  {Title: "🛠️ Practical Application Quiz", CSSClass: "handson-quiz"},
	StyleReading:  {Title: "📚 Reading Comprehension Quiz", CSSClass: "reading-quiz"},
	StyleBlended:  {Title: "Test Your Knowledge", CSSClass: "blended-quiz"},
}

// onboarding answers to "how do you like to learn?"
var preferenceStyles = map[string]LearningStyle{
	"Watching videos":       StyleVisual,
	"Reading books":         StyleReading,
	"Listening to podcasts": StyleAuditory,
	"Doing it myself":       StyleHandsOn,
}

func (s LearningStyle) IsValid() bool {
	_, ok := quizPresentations[s]
	return ok
}

func (s LearningStyle) String() string {
	return string(s)
}

// QuizPresentation falls back to the blended chrome for unknown styles.
func (s LearningStyle) QuizPresentation() QuizPresentation {
	if p, ok := quizPresentations[s]; ok {
		return p
	}
	return quizPresentations[StyleBlended]
}

func ParseLearningStyle(value string) (LearningStyle, error) {
	style := LearningStyle(value)
	if !style.IsValid() {
		return "", fmt.Errorf("invalid learning style %q", value)
	}
	return style, nil
}

// StyleFromPreference maps a stored onboarding answer to a learning style.
// Unrecognised answers map to blended.
func StyleFromPreference(answer string) LearningStyle {
	if style, ok := preferenceStyles[answer]; ok {
		return style
	}
	return StyleBlended
}
