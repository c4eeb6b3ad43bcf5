package formdata

import (
	"net/url"
	"strings"
)

// Disposition is a parsed Content-Disposition value, e.g.
// `form-data; name="file"; filename="de-thi.docx"`.
type Disposition struct {
	Type   string
	Params map[string]string // lowercase keys
}

// Filename returns the filename parameter; ParseDisposition has already
// replaced it with the decoded filename* value when one was sent.
func (d Disposition) Filename() string { return d.Params["filename"] }

// ParseDisposition is lenient: malformed parameters are skipped, quoted values
// may contain ';' and raw UTF-8 filenames are kept as sent by browsers.
func ParseDisposition(v string) Disposition {
	d := Disposition{Params: map[string]string{}}
	segs := splitParams(v)
	if len(segs) == 0 {
		return d
	}
	d.Type = strings.ToLower(strings.TrimSpace(segs[0]))

	var extended string
	for _, s := range segs[1:] {
		k, val, ok := strings.Cut(s, "=")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		val = unquote(strings.TrimSpace(val))
		if k == "" {
			continue
		}
		if k == "filename*" {
			if dec, ok := decodeExtended(val); ok {
				extended = dec
			}
			continue
		}
		d.Params[k] = val
	}
	if extended != "" {
		d.Params["filename"] = extended
	}
	return d
}

// splitParams splits on ';' outside of double quotes.
func splitParams(v string) []string {
	var out []string
	var b strings.Builder
	inQuote, escaped := false, false
	for _, r := range v {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inQuote:
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case r == ';' && !inQuote:
			out = append(out, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	if s := b.String(); strings.TrimSpace(s) != "" {
		out = append(out, s)
	}
	return out
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
		return strings.NewReplacer(`\"`, `"`, `\\`, `\`).Replace(v)
	}
	return v
}

// decodeExtended handles charset'lang'percent-encoded values (RFC 5987).
func decodeExtended(v string) (string, bool) {
	parts := strings.SplitN(v, "'", 3)
	if len(parts) != 3 {
		return "", false
	}
	cs := strings.ToLower(parts[0])
	if cs != "utf-8" && cs != "us-ascii" {
		return "", false
	}
	s, err := url.PathUnescape(parts[2])
	if err != nil {
		return "", false
	}
	return s, true
}
