package http

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ceo575/flowmapga/internal/audit"
	auth "github.com/ceo575/flowmapga/internal/auth/middleware"
	"github.com/ceo575/flowmapga/internal/exam"
	"github.com/ceo575/flowmapga/internal/formdata"
)

type ParseDeps struct {
	Options        exam.ParseOptions
	MaxUploadBytes int64
	Audit          audit.Recorder // nil disables the audit log
}

// POST /api/exams/parse-docx (multipart: file=exam.docx)
func ParseDocxHandler(d ParseDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boundary, err := formdata.BoundaryFromContentType(r.Header.Get("Content-Type"))
		if err != nil {
			writeError(w, &TransportError{Msg: "Content-Type must be multipart/form-data with a boundary", Err: err})
			return
		}

		src := io.Reader(r.Body)
		if d.MaxUploadBytes > 0 {
			src = http.MaxBytesReader(w, r.Body, d.MaxUploadBytes)
		}
		body, err := io.ReadAll(src)
		if err != nil {
			msg := "could not read request body"
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				msg = "upload exceeds " + strconv.FormatInt(mbe.Limit, 10) + " bytes"
			}
			writeError(w, &TransportError{Msg: msg, Err: err})
			return
		}

		part, disp, ok := formdata.FileField(formdata.Decode(body, boundary), "file")
		if !ok {
			writeError(w, &ValidationError{Msg: "missing file upload (field name: file)"})
			return
		}
		name := disp.Filename()
		size := int64(len(part.Content))
		if !strings.HasSuffix(strings.ToLower(name), ".docx") {
			record(r, d.Audit, audit.Entry{Filename: name, SizeBytes: size, Status: audit.StatusRejected, Error: "not a .docx file"})
			writeError(w, &ValidationError{Msg: "only .docx files are accepted"})
			return
		}

		parsed, err := exam.ParseDocx(r.Context(), part.Content, d.Options)
		if err != nil {
			log.Printf("parse-docx %q (%d bytes): %v", name, size, err)
			record(r, d.Audit, audit.Entry{Filename: name, SizeBytes: size, Status: audit.StatusFailed, Error: err.Error()})
			writeError(w, err)
			return
		}

		record(r, d.Audit, audit.Entry{Filename: name, SizeBytes: size, TotalQuestions: parsed.TotalQuestions, Status: audit.StatusOK})
		writeJSON(w, http.StatusOK, parsed)
	}
}

// record never fails the request; the audit log is best effort.
func record(r *http.Request, rec audit.Recorder, e audit.Entry) {
	if rec == nil {
		return
	}
	e.RequestID = middleware.GetReqID(r.Context())
	e.Uploader = auth.SubjectFromContext(r.Context())
	if _, err := rec.Append(context.WithoutCancel(r.Context()), e); err != nil {
		log.Printf("audit append: %v", err)
	}
}

// GET /api/exams/parse-log?limit=50
func ParseLogHandler(rec audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := rec.Recent(r.Context(), limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not read parse log", "details": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	}
}

// GET /health
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
