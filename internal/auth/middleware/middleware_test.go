package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ceo575/flowmapga/internal/rbac"
)

func TestIssueAndParse(t *testing.T) {
	a := NewAuthService("k1")
	tok, err := a.IssueJWT("teacher", "teacher")
	if err != nil {
		t.Fatal(err)
	}
	c, err := a.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Sub != "teacher" || c.Role != "teacher" {
		t.Fatalf("claims=%+v", c)
	}
	if _, err := NewAuthService("k2").Parse(tok); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestCredentials(t *testing.T) {
	if _, err := NewCredentials("teacher", "", ""); err == nil {
		t.Fatal("missing password must fail")
	}
	if _, err := NewCredentials("teacher", "not-a-bcrypt-hash", ""); err == nil {
		t.Fatal("malformed hash must fail")
	}
	c, err := NewCredentials("teacher", "", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Check("teacher", "s3cret") {
		t.Fatal("expected match")
	}
	if c.Check("teacher", "nope") || c.Check("admin", "s3cret") {
		t.Fatal("expected mismatch")
	}
	// reuse the generated hash as a configured one
	c2, err := NewCredentials("teacher", string(c.Hash), "")
	if err != nil || !c2.Check("teacher", "s3cret") {
		t.Fatalf("hash credentials: %v", err)
	}
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("k1")
	var sub, role string
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub = SubjectFromContext(r.Context())
		role = rbac.RoleFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no bearer: %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", rec.Code)
	}

	tok, _ := a.IssueJWT("t1", "admin")
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || sub != "t1" || role != "admin" {
		t.Fatalf("code=%d sub=%q role=%q", rec.Code, sub, role)
	}
}
