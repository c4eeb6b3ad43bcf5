package exam

import (
	"strings"

	"github.com/ceo575/flowmapga/internal/docx"
)

// normalize flattens finished builders into questions, numbered from 1 in
// the order they were opened.
func normalize(built []questionBuilder) []Question {
	out := make([]Question, 0, len(built))
	for i, b := range built {
		q := Question{
			Order:            i + 1,
			Question:         joinText(b.stem),
			QuestionParts:    b.stem,
			Options:          b.options,
			QuestionType:     StyleSingleChoice,
			Explanation:      joinText(b.explanation),
			ExplanationParts: b.explanation,
		}
		if q.Options == nil {
			q.Options = []Option{}
		}
		if q.ExplanationParts == nil {
			q.ExplanationParts = []docx.Paragraph{}
		}
		for _, o := range b.options {
			if o.IsCorrect && q.CorrectAnswer == nil {
				label := o.Label
				q.CorrectAnswer = &label
			}
			if o.Style == StyleTrueFalse {
				q.QuestionType = StyleTrueFalse
			}
		}
		out = append(out, q)
	}
	return out
}

func joinText(ps []docx.Paragraph) string {
	texts := make([]string, len(ps))
	for i, p := range ps {
		texts[i] = p.Text
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}
