// Package formdata decodes multipart/form-data request bodies at the byte level.
//
// Parts are sub-slices of the original body; nothing is text-decoded, so
// binary uploads (zip containers, embedded NUL bytes) round-trip unchanged.
package formdata

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"strings"
)

var (
	crlf     = []byte("\r\n")
	blank    = []byte("\r\n\r\n")
	closeTag = []byte("--")
)

// ErrNoBoundary is returned when a Content-Type header carries no usable boundary.
var ErrNoBoundary = errors.New("formdata: missing multipart boundary")

// Header maps lowercase header names to their (trimmed) values.
type Header map[string]string

// Get looks a header up case-insensitively.
func (h Header) Get(name string) string { return h[strings.ToLower(name)] }

type Part struct {
	Header  Header
	Content []byte
}

// Disposition returns the parsed Content-Disposition header of the part.
func (p Part) Disposition() Disposition {
	return ParseDisposition(p.Header.Get("content-disposition"))
}

// BoundaryFromContentType extracts the boundary parameter of a multipart Content-Type.
func BoundaryFromContentType(ct string) (string, error) {
	if strings.TrimSpace(ct) == "" {
		return "", ErrNoBoundary
	}
	mt, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoBoundary, err)
	}
	if !strings.HasPrefix(mt, "multipart/") {
		return "", fmt.Errorf("%w: content type %q is not multipart", ErrNoBoundary, mt)
	}
	b := params["boundary"]
	if b == "" {
		return "", ErrNoBoundary
	}
	return b, nil
}

// Decode splits body into its boundary-delimited parts.
//
// The first delimiter may sit at the very start of the body or after a
// preamble line; every later delimiter must start a line. A delimiter
// followed by "--" closes the body. A body with no delimiter yields no parts.
func Decode(body []byte, boundary string) []Part {
	if boundary == "" {
		return nil
	}
	dash := []byte("--" + boundary)
	delim := append([]byte("\r\n"), dash...)

	var pos int
	if bytes.HasPrefix(body, dash) {
		pos = len(dash)
	} else {
		i := indexDelimiter(body, 0, delim)
		if i < 0 {
			return nil
		}
		pos = i + len(delim)
	}

	var parts []Part
	for pos <= len(body) {
		rest := body[pos:]
		if bytes.HasPrefix(rest, closeTag) {
			break
		}
		// transport padding is allowed between the delimiter and its CRLF
		trimmed := bytes.TrimLeft(rest, " \t")
		if !bytes.HasPrefix(trimmed, crlf) {
			break
		}
		start := pos + (len(rest) - len(trimmed)) + len(crlf)

		end := indexDelimiter(body, start, delim)
		if end < 0 {
			break
		}

		if p, ok := parsePart(body[start:end]); ok {
			parts = append(parts, p)
		}
		pos = end + len(delim)
	}
	return parts
}

// indexDelimiter returns the offset of the first delimiter at or after from.
// The boundary bytes only count when followed by "--", by optional padding
// and CRLF, or by the end of the body; anything else is part content.
func indexDelimiter(body []byte, from int, delim []byte) int {
	for from <= len(body) {
		i := bytes.Index(body[from:], delim)
		if i < 0 {
			return -1
		}
		i += from
		rest := body[i+len(delim):]
		if bytes.HasPrefix(rest, closeTag) {
			return i
		}
		rest = bytes.TrimLeft(rest, " \t")
		if len(rest) == 0 || bytes.HasPrefix(rest, crlf) {
			return i
		}
		from = i + 1
	}
	return -1
}

func parsePart(seg []byte) (Part, bool) {
	var head, content []byte
	if bytes.HasPrefix(seg, crlf) {
		// empty header block
		content = seg[len(crlf):]
	} else {
		i := bytes.Index(seg, blank)
		if i < 0 {
			return Part{}, false
		}
		head, content = seg[:i], seg[i+len(blank):]
	}

	h := Header{}
	for _, line := range strings.Split(string(head), "\r\n") {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		h[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return Part{Header: h, Content: content}, true
}

// FileField returns the first part whose disposition names field and carries a filename.
func FileField(parts []Part, field string) (Part, Disposition, bool) {
	for _, p := range parts {
		d := p.Disposition()
		if d.Params["name"] == field && d.Params["filename"] != "" {
			return p, d, true
		}
	}
	return Part{}, Disposition{}, false
}
