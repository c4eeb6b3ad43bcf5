package exam

import (
	"strings"
	"unicode"

	"github.com/ceo575/flowmapga/internal/docx"
)

type State int

const (
	AwaitingQuestion State = iota
	InStem
	InOptions
	InExplanation
)

func (s State) String() string {
	switch s {
	case AwaitingQuestion:
		return "awaiting_question"
	case InStem:
		return "in_stem"
	case InOptions:
		return "in_options"
	case InExplanation:
		return "in_explanation"
	default:
		return "unknown"
	}
}

// questionBuilder accumulates one question while its paragraphs stream in.
// It is owned by the Segmenter until finalize moves it into the output.
type questionBuilder struct {
	stem        []docx.Paragraph
	options     []Option
	explanation []docx.Paragraph
}

// Segmenter is a finite-state machine over document paragraphs. It is not
// safe for concurrent use; each upload gets its own.
type Segmenter struct {
	markers Markers
	state   State
	cur     *questionBuilder
	done    []questionBuilder
	closed  bool
}

func NewSegmenter(m Markers) *Segmenter {
	if m.Question == nil || m.Explanation == nil {
		m = DefaultMarkers
	}
	return &Segmenter{markers: m}
}

func (s *Segmenter) State() State { return s.state }

// Feed classifies the next paragraph in document order.
func (s *Segmenter) Feed(p docx.Paragraph) error {
	if s.closed {
		return &ParseError{Op: "feed", Msg: "paragraph received after finish"}
	}
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return nil
	}

	if rest, ok := stripMarker(s.markers.Question, text); ok {
		s.startQuestion(p, rest)
		return nil
	}

	switch s.state {
	case AwaitingQuestion:
		// preamble before the first question (title, instructions) is dropped
	case InStem, InOptions:
		s.inBody(p, text)
	case InExplanation:
		if rest, ok := stripMarker(s.markers.Explanation, text); ok {
			p.Text = strings.TrimSpace(rest)
		}
		s.cur.explanation = append(s.cur.explanation, p)
	default:
		return &ParseError{Op: "feed", Msg: "unknown state " + s.state.String()}
	}
	return nil
}

// Finish closes the open question and hands over everything collected.
func (s *Segmenter) Finish() ([]Question, error) {
	if s.closed {
		return nil, &ParseError{Op: "finish", Msg: "segmenter already finished"}
	}
	s.flush()
	s.closed = true
	out := normalize(s.done)
	s.done = nil
	return out, nil
}

func (s *Segmenter) startQuestion(p docx.Paragraph, rest string) {
	s.flush()
	first := p
	first.Text = strings.TrimSpace(rest)
	s.cur = &questionBuilder{stem: []docx.Paragraph{first}}
	s.state = InStem
}

func (s *Segmenter) flush() {
	if s.cur == nil {
		return
	}
	s.done = append(s.done, *s.cur)
	s.cur = nil
}

func (s *Segmenter) inBody(p docx.Paragraph, text string) {
	if rest, ok := stripMarker(s.markers.Explanation, text); ok {
		first := p
		first.Text = strings.TrimSpace(rest)
		s.cur.explanation = append(s.cur.explanation, first)
		s.state = InExplanation
		return
	}

	if opt, ok := detectOption(p); ok {
		s.cur.options = append(s.cur.options, opt)
		s.state = InOptions
		return
	}

	if n := len(s.cur.options); n > 0 {
		last := &s.cur.options[n-1]
		last.Content = strings.TrimSpace(last.Content + "\n" + text)
		last.Raw = strings.TrimSpace(last.Raw + "\n" + text)
		if hasUnderline(p.Parts) {
			last.IsCorrect = true
		}
		return
	}

	s.cur.stem = append(s.cur.stem, p)
}

// detectOption recognises "A." .. "D." and "a)" .. "d)" labels. The label
// only counts when some run covering it is bold; plain "A." is prose.
func detectOption(p docx.Paragraph) (Option, bool) {
	trimmed := strings.TrimLeftFunc(p.Text, unicode.IsSpace)
	lead := len(p.Text) - len(trimmed)

	style := StyleSingleChoice
	m := singleChoiceRe.FindStringSubmatch(trimmed)
	if m == nil {
		style = StyleTrueFalse
		m = trueFalseRe.FindStringSubmatch(trimmed)
	}
	if m == nil {
		return Option{}, false
	}
	prefix, label := m[0], m[1]

	if !boldSpan(p.Parts, lead, lead+len(prefix)) {
		return Option{}, false
	}
	return Option{
		Label:     label,
		Content:   strings.TrimSpace(trimmed[len(prefix):]),
		Raw:       trimmed,
		IsCorrect: hasUnderline(p.Parts),
		Style:     style,
	}, true
}

// boldSpan reports whether any bold run overlapping text[from:to] has
// non-blank text inside that window.
func boldSpan(parts []docx.Run, from, to int) bool {
	pos := 0
	for _, r := range parts {
		if pos >= to {
			break
		}
		start, end := pos, pos+len(r.Text)
		pos = end
		if r.Text == "" || end <= from {
			continue
		}
		lo, hi := max(start, from), min(end, to)
		if r.Bold && strings.TrimSpace(r.Text[lo-start:hi-start]) != "" {
			return true
		}
	}
	return false
}

func hasUnderline(parts []docx.Run) bool {
	for _, r := range parts {
		if r.Underline && strings.TrimSpace(r.Text) != "" {
			return true
		}
	}
	return false
}
