package docx_test

import (
	"testing"

	"github.com/ceo575/flowmapga/internal/docx"
	"github.com/ceo575/flowmapga/internal/docx/docxtest"
)

func TestLexParagraphsAndFormatting(t *testing.T) {
	markup := docxtest.Document(
		docxtest.Para(docxtest.Bold("A."), docxtest.Plain(" 1")),
		`<w:p/>`,
		docxtest.Para(docxtest.Underline("B. 2")),
	)
	ps := docx.Lex(markup)
	if len(ps) != 3 {
		t.Fatalf("paragraphs=%d want 3", len(ps))
	}
	if ps[0].Text != "A. 1" || len(ps[0].Parts) != 2 {
		t.Fatalf("p0=%+v", ps[0])
	}
	if !ps[0].Parts[0].Bold || ps[0].Parts[1].Bold {
		t.Fatalf("bold flags wrong: %+v", ps[0].Parts)
	}
	if ps[1].Text != "" || len(ps[1].Parts) != 0 {
		t.Fatalf("self-closing paragraph should be empty: %+v", ps[1])
	}
	if r := ps[2].Parts[0]; !r.Underline || r.Bold || r.Kind != docx.RunText {
		t.Fatalf("p2 run=%+v", r)
	}
}

func TestLexToggleValues(t *testing.T) {
	markup := `<w:p>` +
		`<w:r><w:rPr><w:b w:val="0"/><w:u w:val="none"/></w:rPr><w:t>off</w:t></w:r>` +
		`<w:r><w:rPr><w:b w:val="true"/><w:u w:val="double"/></w:rPr><w:t>on</w:t></w:r>` +
		`<w:r><w:rPr><w:bCs/></w:rPr><w:t>cs</w:t></w:r>` +
		`</w:p>`
	ps := docx.Lex(markup)
	if len(ps) != 1 || len(ps[0].Parts) != 3 {
		t.Fatalf("got %+v", ps)
	}
	off, on, cs := ps[0].Parts[0], ps[0].Parts[1], ps[0].Parts[2]
	if off.Bold || off.Underline {
		t.Errorf("explicitly disabled run reported on: %+v", off)
	}
	if !on.Bold || !on.Underline {
		t.Errorf("enabled run reported off: %+v", on)
	}
	if !cs.Bold {
		t.Errorf("w:bCs should count as bold: %+v", cs)
	}
}

func TestLexEntities(t *testing.T) {
	markup := `<w:p><w:r><w:t>a &amp; b &lt; c &gt; &quot;q&quot; &apos;s&apos; &#7843; &#x1EA1; &amp;lt;</w:t></w:r></w:p>`
	ps := docx.Lex(markup)
	want := `a & b < c > "q" 's' ả ạ &lt;`
	if ps[0].Text != want {
		t.Fatalf("text=%q want %q", ps[0].Text, want)
	}
}

func TestDecodeTextXMLRules(t *testing.T) {
	cases := []struct{ in, want string }{
		{"&#150;", "\u0096"}, // no Windows-1252 remap
		{"&#x96;", "\u0096"},
		{"a &amp b", "a &amp b"},
		{"&nbsp;", "&nbsp;"},
		{"&#0; &#xD800; &#x;", "&#0; &#xD800; &#x;"},
		{"&amp;&amp;", "&&"},
		{"tail &", "tail &"},
		{"&&lt;", "&<"},
	}
	for _, tc := range cases {
		if got := docx.DecodeText(tc.in); got != tc.want {
			t.Errorf("DecodeText(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestLexNFC(t *testing.T) {
	// combining circumflex (NFD) must come out precomposed
	markup := "<w:p><w:r><w:t>Ca\u0302u</w:t></w:r></w:p>"
	if got := docx.Lex(markup)[0].Text; got != "C\u00e2u" {
		t.Fatalf("text=%q want precomposed", got)
	}
}

func TestLexRunContentOrder(t *testing.T) {
	markup := `<w:p><w:r><w:rPr><w:u w:val="single"/></w:rPr><w:t>x</w:t><w:tab/><w:t>y</w:t><w:br/><w:t/><w:cr/></w:r></w:p>`
	ps := docx.Lex(markup)
	if ps[0].Text != "x\ty\n\n" {
		t.Fatalf("text=%q", ps[0].Text)
	}
	for _, r := range ps[0].Parts {
		if !r.Underline {
			t.Fatalf("tab/break must inherit run formatting: %+v", r)
		}
	}
}

func TestLexHyperlinkAndMath(t *testing.T) {
	markup := `<w:p>` +
		`<w:r><w:t>see </w:t></w:r>` +
		`<w:hyperlink r:id="rId9"><w:r><w:rPr><w:b/></w:rPr><w:t>link</w:t></w:r></w:hyperlink>` +
		`<m:oMath><m:r><w:rPr><w:b/></w:rPr><m:t>x^2</m:t></m:r></m:oMath>` +
		`<w:r><w:t> end</w:t></w:r>` +
		`</w:p>`
	ps := docx.Lex(markup)
	if len(ps) != 1 {
		t.Fatalf("paragraphs=%d", len(ps))
	}
	p := ps[0]
	if p.Text != "see link end" {
		t.Fatalf("text=%q", p.Text)
	}
	if len(p.Parts) != 4 {
		t.Fatalf("parts=%+v", p.Parts)
	}
	if !p.Parts[1].Bold || p.Parts[1].Text != "link" {
		t.Fatalf("hyperlink run=%+v", p.Parts[1])
	}
	m := p.Parts[2]
	if m.Kind != docx.RunMath || m.Text != "" || m.Bold {
		t.Fatalf("math run=%+v", m)
	}
	if m.Raw != `<m:oMath><m:r><w:rPr><w:b/></w:rPr><m:t>x^2</m:t></m:r></m:oMath>` {
		t.Fatalf("math raw=%q", m.Raw)
	}
}

func TestLexSkipsGarbage(t *testing.T) {
	markup := `<w:body><w:p><w:r><w:t>ok</w:t></w:r><w:r><w:t>unterminated</w:p><w:p><w:fldSimple/></w:p>`
	ps := docx.Lex(markup)
	if len(ps) != 2 {
		t.Fatalf("paragraphs=%d", len(ps))
	}
	if ps[0].Text != "ok" {
		t.Fatalf("text=%q", ps[0].Text)
	}
	if ps[1].Text != "" {
		t.Fatalf("text=%q", ps[1].Text)
	}
}
