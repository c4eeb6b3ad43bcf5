package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

const (
	DefaultMaxMarkupBytes = 20 << 20
	DefaultTimeout        = 10 * time.Second

	mainPartFallback = "word/document.xml"
	officeDocRelType = "/officeDocument"
)

var (
	ErrInvalidContainer = errors.New("not a valid .docx container")
	ErrMissingPart      = errors.New("document body part missing or empty")
	ErrTooLarge         = errors.New("document body exceeds size limit")
	ErrTimeout          = errors.New("document extraction timed out")
)

// ExtractionError wraps one of the Err* kinds together with its underlying cause.
type ExtractionError struct {
	Kind  error
	Cause error
}

func (e *ExtractionError) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Cause.Error()
}

func (e *ExtractionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func extractErr(kind, cause error) error { return &ExtractionError{Kind: kind, Cause: cause} }

// Limits bounds a single extraction. Zero values fall back to the defaults.
type Limits struct {
	MaxMarkupBytes int64
	Timeout        time.Duration
}

func (l Limits) withDefaults() Limits {
	if l.MaxMarkupBytes <= 0 {
		l.MaxMarkupBytes = DefaultMaxMarkupBytes
	}
	if l.Timeout <= 0 {
		l.Timeout = DefaultTimeout
	}
	return l
}

// Extract returns the WordprocessingML markup of the main document part.
// The archive is read in memory; nothing touches the filesystem.
func Extract(ctx context.Context, data []byte, lim Limits) (string, error) {
	lim = lim.withDefaults()
	ctx, cancel := context.WithTimeout(ctx, lim.Timeout)
	defer cancel()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", extractErr(ErrInvalidContainer, err)
	}

	name := mainPartName(zr)
	f := findFile(zr, name)
	if f == nil {
		return "", extractErr(ErrMissingPart, fmt.Errorf("%s not found", name))
	}
	if f.UncompressedSize64 > uint64(lim.MaxMarkupBytes) {
		return "", extractErr(ErrTooLarge, fmt.Errorf("%s declares %d bytes (limit %d)", name, f.UncompressedSize64, lim.MaxMarkupBytes))
	}

	rc, err := f.Open()
	if err != nil {
		return "", extractErr(ErrInvalidContainer, err)
	}
	defer rc.Close()

	b, err := io.ReadAll(io.LimitReader(ctxReader{ctx: ctx, r: rc}, lim.MaxMarkupBytes+1))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", extractErr(ErrTimeout, err)
		}
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", extractErr(ErrInvalidContainer, err)
	}
	if int64(len(b)) > lim.MaxMarkupBytes {
		return "", extractErr(ErrTooLarge, fmt.Errorf("%s inflates past %d bytes", name, lim.MaxMarkupBytes))
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return "", extractErr(ErrMissingPart, fmt.Errorf("%s is empty", name))
	}
	return string(b), nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Rels    []relationship `xml:"Relationship"`
}
type relationship struct {
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// mainPartName follows the package relationships to the officeDocument part
// and falls back to the conventional word/document.xml.
func mainPartName(zr *zip.Reader) string {
	f := findFile(zr, "_rels/.rels")
	if f == nil {
		return mainPartFallback
	}
	rc, err := f.Open()
	if err != nil {
		return mainPartFallback
	}
	defer rc.Close()

	var rels relationships
	if err := xml.NewDecoder(io.LimitReader(rc, 1<<20)).Decode(&rels); err != nil {
		return mainPartFallback
	}
	for _, r := range rels.Rels {
		if strings.HasSuffix(r.Type, officeDocRelType) && r.Target != "" {
			t := strings.TrimPrefix(path.Clean("/"+r.Target), "/")
			if findFile(zr, t) != nil {
				return t
			}
		}
	}
	return mainPartFallback
}

func findFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
