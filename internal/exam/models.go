package exam

import "github.com/ceo575/flowmapga/internal/docx"

type OptionStyle string

const (
	StyleSingleChoice OptionStyle = "single_choice"
	StyleTrueFalse    OptionStyle = "true_false"
)

type Option struct {
	Label     string      `json:"key"`
	Content   string      `json:"content"`
	Raw       string      `json:"raw"` // includes the "A." / "a)" prefix
	IsCorrect bool        `json:"isCorrect"`
	Style     OptionStyle `json:"-"`
}

type Question struct {
	Order            int              `json:"order"`
	Question         string           `json:"question"`
	QuestionParts    []docx.Paragraph `json:"questionParts"`
	Options          []Option         `json:"options"`
	CorrectAnswer    *string          `json:"correctAnswer"` // nil when no option is underlined
	QuestionType     OptionStyle      `json:"questionType"`
	Explanation      string           `json:"explanation"`
	ExplanationParts []docx.Paragraph `json:"explanationParts"`
}

type ParsedExam struct {
	TotalQuestions int        `json:"totalQuestions"`
	Questions      []Question `json:"questions"`
}
