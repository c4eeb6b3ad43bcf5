// Package audit keeps a small log of parse requests: who uploaded what and
// how it went. It deliberately stores no question content.
package audit

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusRejected Status = "rejected"
	StatusFailed   Status = "failed"
)

type Entry struct {
	ID             string `json:"id"`
	RequestID      string `json:"requestId,omitempty"`
	Uploader       string `json:"uploader,omitempty"`
	Filename       string `json:"filename"`
	SizeBytes      int64  `json:"sizeBytes"`
	TotalQuestions int    `json:"totalQuestions"`
	Status         Status `json:"status"`
	Error          string `json:"error,omitempty"`
	CreatedAt      int64  `json:"createdAt"`
}

// Recorder is what the HTTP layer needs; a nil Recorder disables auditing.
type Recorder interface {
	Append(ctx context.Context, e Entry) (Entry, error)
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO parse_log (id, request_id, uploader, filename, size_bytes, total_questions, status, error, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		e.ID, e.RequestID, e.Uploader, e.Filename, e.SizeBytes, e.TotalQuestions, string(e.Status), e.Error, e.CreatedAt)
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Recent returns the newest entries first.
func (r *Repo) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, request_id, uploader, filename, size_bytes, total_questions, status, error, created_at
		   FROM parse_log ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var st string
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Uploader, &e.Filename, &e.SizeBytes, &e.TotalQuestions, &st, &e.Error, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Status = Status(st)
		out = append(out, e)
	}
	return out, rows.Err()
}
