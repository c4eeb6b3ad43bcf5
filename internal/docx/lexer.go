// Package docx turns an uploaded .docx container into styled paragraphs.
//
// The lexer is deliberately pattern based rather than a full XML decode:
// word processors emit plenty of vendor markup, and a fragment we do not
// recognise is skipped instead of failing the whole document.
package docx

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

type RunKind string

const (
	RunText RunKind = "text"
	RunMath RunKind = "math"
)

// Run is one formatted fragment of a paragraph. Math runs keep their raw
// markup in Raw and contribute nothing to the paragraph text.
type Run struct {
	Kind      RunKind `json:"type"`
	Text      string  `json:"text"`
	Raw       string  `json:"raw,omitempty"`
	Bold      bool    `json:"bold"`
	Underline bool    `json:"underline"`
}

type Paragraph struct {
	Parts []Run  `json:"parts"`
	Text  string `json:"text"`
}

var (
	paragraphRe = regexp.MustCompile(`(?s)<w:p(?:\s[^>]*)?/>|<w:p(?:\s[^>]*)?>.*?</w:p>`)

	// hyperlinks are matched whole so their runs are emitted in place
	tokenRe = regexp.MustCompile(`(?s)<w:hyperlink\b.*?</w:hyperlink>|<w:r(?:\s[^>]*)?>.*?</w:r>|<m:oMathPara\b.*?</m:oMathPara>|<m:oMath\b.*?</m:oMath>`)
	runRe   = regexp.MustCompile(`(?s)<w:r(?:\s[^>]*)?>.*?</w:r>`)

	rPrRe       = regexp.MustCompile(`(?s)<w:rPr>(.*?)</w:rPr>`)
	emptyTextRe = regexp.MustCompile(`<w:t(?:\s[^>]*)?/>`)
	contentRe   = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>(.*?)</w:t>|<w:tab(?:\s[^>]*)?/?>|<w:(?:br|cr)(?:\s[^>]*)?/?>`)

	boldRe      = regexp.MustCompile(`<w:b(\s[^>]*)?/?>`)
	boldCsRe    = regexp.MustCompile(`<w:bCs(\s[^>]*)?/?>`)
	underlineRe = regexp.MustCompile(`<w:u(\s[^>]*)?/?>`)
	valRe       = regexp.MustCompile(`w:val="([^"]*)"`)
)

// Lex splits document markup into paragraphs of styled runs. It never fails;
// markup it cannot make sense of simply produces fewer runs.
func Lex(markup string) []Paragraph {
	locs := paragraphRe.FindAllString(markup, -1)
	out := make([]Paragraph, 0, len(locs))
	for _, p := range locs {
		out = append(out, lexParagraph(p))
	}
	return out
}

func lexParagraph(xml string) Paragraph {
	var parts []Run
	for _, tok := range tokenRe.FindAllString(xml, -1) {
		switch {
		case strings.HasPrefix(tok, "<w:hyperlink"):
			for _, r := range runRe.FindAllString(tok, -1) {
				parts = append(parts, lexRun(r)...)
			}
		case strings.HasPrefix(tok, "<w:r"):
			parts = append(parts, lexRun(tok)...)
		default:
			parts = append(parts, Run{Kind: RunMath, Raw: tok})
		}
	}

	var b strings.Builder
	for _, r := range parts {
		b.WriteString(r.Text)
	}
	return Paragraph{Parts: parts, Text: b.String()}
}

func lexRun(xml string) []Run {
	var props string
	if m := rPrRe.FindStringSubmatch(xml); m != nil {
		props = m[1]
	}
	bold := toggle(boldRe, props, "") || toggle(boldCsRe, props, "")
	underline := toggle(underlineRe, props, "none")

	body := emptyTextRe.ReplaceAllString(rPrRe.ReplaceAllString(xml, ""), "")

	var out []Run
	for _, m := range contentRe.FindAllStringSubmatch(body, -1) {
		var text string
		switch {
		case strings.HasPrefix(m[0], "<w:t"):
			if strings.HasPrefix(m[0], "<w:tab") {
				text = "\t"
			} else {
				text = DecodeText(m[1])
			}
		default:
			text = "\n"
		}
		out = append(out, Run{Kind: RunText, Text: text, Bold: bold, Underline: underline})
	}
	return out
}

// toggle reports whether an on/off run property is present and switched on.
// off is an extra w:val that disables it (underline uses "none").
func toggle(re *regexp.Regexp, props, off string) bool {
	m := re.FindString(props)
	if m == "" {
		return false
	}
	v := valRe.FindStringSubmatch(m)
	if v == nil {
		return true
	}
	switch val := strings.ToLower(v[1]); {
	case val == "0", val == "false", val == "off":
		return false
	case off != "" && val == off:
		return false
	}
	return true
}

// DecodeText resolves XML entities (named and numeric) and normalises the
// result to NFC.
func DecodeText(s string) string {
	if strings.IndexByte(s, '&') >= 0 {
		s = unescapeXML(s)
	}
	return norm.NFC.String(s)
}

var xmlEntities = map[string]string{"amp": "&", "lt": "<", "gt": ">", "quot": `"`, "apos": "'"}

// unescapeXML decodes only what XML defines: the five predefined entities
// and &#N; / &#xH; references. Anything else, including a reference without
// its ';', is kept verbatim.
func unescapeXML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.IndexByte(s, '&')
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s = s[i:]
		end := strings.IndexByte(s, ';')
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		if r, ok := resolveEntity(s[1:end]); ok {
			b.WriteString(r)
			s = s[end+1:]
			continue
		}
		b.WriteByte('&')
		s = s[1:]
	}
}

func resolveEntity(name string) (string, bool) {
	if v, ok := xmlEntities[name]; ok {
		return v, true
	}
	num, ok := strings.CutPrefix(name, "#")
	if !ok || num == "" {
		return "", false
	}
	base := 10
	if hex, ok := strings.CutPrefix(num, "x"); ok {
		num, base = hex, 16
	}
	n, err := strconv.ParseUint(num, base, 32)
	if err != nil || n == 0 || !utf8.ValidRune(rune(n)) {
		return "", false
	}
	return string(rune(n)), true
}
