package models

import "strings"

// QuizView is a render-ready description of a quiz instance. It carries no
// behaviour; templates and JSON clients consume it as is.
type QuizView struct {
	ID             string         `json:"id"`
	LearningStyle  LearningStyle  `json:"learning_style"`
	Title          string         `json:"title"`
	StyleClass     string         `json:"style_class"`
	Questions      []QuestionView `json:"questions"`
	SubmitDisabled bool           `json:"submit_disabled"`
	Result         ResultView     `json:"result"`
}

type QuestionView struct {
	Index   int          `json:"index"`
	Number  int          `json:"number"`
	Text    string       `json:"text"`
	Options []OptionView `json:"options"`
}

type OptionView struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	InputID   string `json:"input_id"`
	InputName string `json:"input_name"`
	Selected  bool   `json:"selected"`
	Correct   bool   `json:"correct"`
	Incorrect bool   `json:"incorrect"`
	Disabled  bool   `json:"disabled"`
}

func (o OptionView) Classes() string {
	classes := []string{"quiz-option"}
	if o.Selected {
		classes = append(classes, "selected")
	}
	if o.Correct {
		classes = append(classes, "correct")
	}
	if o.Incorrect {
		classes = append(classes, "incorrect")
	}
	return strings.Join(classes, " ")
}

// ResultView is hidden until the quiz is graded.
type ResultView struct {
	Visible   bool             `json:"visible"`
	Band      Band             `json:"band,omitempty"`
	ScoreLine string           `json:"score_line,omitempty"`
	Message   string           `json:"message,omitempty"`
	Breakdown *VisualBreakdown `json:"breakdown,omitempty"`
}

func (r ResultView) Classes() string {
	if r.Band == "" {
		return "quiz-result"
	}
	return "quiz-result " + string(r.Band)
}

// VisualBreakdown is the extra correct/incorrect/band panel shown to visual learners.
type VisualBreakdown struct {
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
	Label     string `json:"label"`
	Color     string `json:"color"`
}
