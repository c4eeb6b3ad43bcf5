package exam

import (
	"context"
	"fmt"

	"github.com/ceo575/flowmapga/internal/docx"
)

type ParseOptions struct {
	Markers Markers
	Limits  docx.Limits
}

// ParseDocx runs the whole pipeline over an uploaded .docx: container
// extraction, lexing and segmentation. Any failure discards all work.
func ParseDocx(ctx context.Context, data []byte, opts ParseOptions) (ParsedExam, error) {
	markup, err := docx.Extract(ctx, data, opts.Limits)
	if err != nil {
		return ParsedExam{}, err
	}
	return ParseMarkup(markup, opts.Markers)
}

// ParseMarkup segments already extracted document markup.
func ParseMarkup(markup string, m Markers) (ParsedExam, error) {
	return ParseParagraphs(docx.Lex(markup), m)
}

func ParseParagraphs(ps []docx.Paragraph, m Markers) (ParsedExam, error) {
	seg := NewSegmenter(m)
	for i, p := range ps {
		if err := seg.Feed(p); err != nil {
			return ParsedExam{}, fmt.Errorf("paragraph %d: %w", i, err)
		}
	}
	qs, err := seg.Finish()
	if err != nil {
		return ParsedExam{}, err
	}
	return ParsedExam{TotalQuestions: len(qs), Questions: qs}, nil
}
