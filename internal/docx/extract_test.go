package docx_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ceo575/flowmapga/internal/docx"
	"github.com/ceo575/flowmapga/internal/docx/docxtest"
)

func TestExtractMainPart(t *testing.T) {
	data := docxtest.Docx(docxtest.Para(docxtest.Plain("xin chào")))
	markup, err := docx.Extract(context.Background(), data, docx.Limits{})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(markup, "xin chào") {
		t.Fatalf("markup missing text: %s", markup)
	}
}

func TestExtractFollowsRelationships(t *testing.T) {
	rels := `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="/word/document2.xml"/>` +
		`</Relationships>`
	data := docxtest.Zip(map[string]string{
		"_rels/.rels":        rels,
		"word/document.xml":  docxtest.Document(docxtest.Para(docxtest.Plain("stale"))),
		"word/document2.xml": docxtest.Document(docxtest.Para(docxtest.Plain("current"))),
	})
	markup, err := docx.Extract(context.Background(), data, docx.Limits{})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(markup, "current") {
		t.Fatalf("expected document2.xml, got %s", markup)
	}
}

func TestExtractErrors(t *testing.T) {
	big := strings.Repeat("a", 2048)
	cases := []struct {
		name string
		data []byte
		lim  docx.Limits
		want error
	}{
		{"not a zip", []byte("this is a .doc from 1997"), docx.Limits{}, docx.ErrInvalidContainer},
		{"empty upload", nil, docx.Limits{}, docx.ErrInvalidContainer},
		{"no document part", docxtest.Zip(map[string]string{"word/styles.xml": "<w:styles/>"}), docx.Limits{}, docx.ErrMissingPart},
		{"empty document part", docxtest.Zip(map[string]string{"word/document.xml": "  \n"}), docx.Limits{}, docx.ErrMissingPart},
		{"too large", docxtest.Zip(map[string]string{"word/document.xml": big}), docx.Limits{MaxMarkupBytes: 1024}, docx.ErrTooLarge},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := docx.Extract(context.Background(), c.data, c.lim)
			if !errors.Is(err, c.want) {
				t.Fatalf("err=%v want %v", err, c.want)
			}
			var xe *docx.ExtractionError
			if !errors.As(err, &xe) {
				t.Fatalf("expected *ExtractionError, got %T", err)
			}
		})
	}
}

func TestExtractTimeout(t *testing.T) {
	data := docxtest.Docx(docxtest.Para(docxtest.Plain("slow")))
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := docx.Extract(ctx, data, docx.Limits{})
	if !errors.Is(err, docx.ErrTimeout) {
		t.Fatalf("err=%v want ErrTimeout", err)
	}
}
