package http

import (
	"encoding/json"
	"errors"
	"net/http"
)

// TransportError is a malformed request: bad Content-Type, unreadable body.
type TransportError struct {
	Msg string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}
func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is a well-formed request asking for something we refuse.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

const parseFailedMsg = "could not parse the .docx file"

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto status codes. Client errors carry
// only a message; anything else (docx.ExtractionError, exam.ParseError) is a
// 500 with the underlying cause as details.
func writeError(w http.ResponseWriter, err error) {
	var (
		te *TransportError
		ve *ValidationError
	)
	switch {
	case errors.As(err, &te):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": te.Msg})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Msg})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": parseFailedMsg, "details": err.Error()})
	}
}
