package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Mode string

// DevHMACSecret signs tokens when AUTH_HMAC_SECRET is unset. Only offline
// setups may run with it.
const DevHMACSecret = "supersecret-dev-key"

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	MaxUploadBytes int64
	MaxMarkupBytes int64
	ExtractTimeout time.Duration
	RequestTimeout time.Duration
	MarkerLocale   string // vi|en

	// upload audit log (metadata only, never parsed questions)
	AuditLog bool
	DBDriver string
	DBDSN    string

	EnableAuth      bool
	AuthHMACSecret  string
	TeacherUser     string
	TeacherPassHash string // bcrypt
	TeacherPassword string // dev only; hashed at startup when no hash is set
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":" + envOr("PORT", "3001")
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           addr,
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://flowmapga.app"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),

		MaxUploadBytes: envInt("MAX_UPLOAD_BYTES", 25<<20),
		MaxMarkupBytes: envInt("MAX_MARKUP_BYTES", 20<<20),
		ExtractTimeout: envDuration("EXTRACT_TIMEOUT", 10*time.Second),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 30*time.Second),
		MarkerLocale:   envOr("MARKER_LOCALE", "vi"),

		AuditLog: envBool("AUDIT_LOG", false),
		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		EnableAuth:      envBool("ENABLE_AUTH", mode == ModeOnline),
		AuthHMACSecret:  envOr("AUTH_HMAC_SECRET", DevHMACSecret),
		TeacherUser:     envOr("TEACHER_USER", "teacher"),
		TeacherPassHash: os.Getenv("TEACHER_PASS_HASH"),
		TeacherPassword: os.Getenv("TEACHER_PASSWORD"),
	}
}

// Validate rejects settings that are unsafe to serve with.
func (c Config) Validate() error {
	if c.Mode == ModeOnline && c.EnableAuth && c.AuthHMACSecret == DevHMACSecret {
		return errors.New("AUTH_HMAC_SECRET must be set in online mode")
	}
	return nil
}

// CORSOrigins returns the allow-list for the current mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int64) int64 {
	n, err := strconv.ParseInt(os.Getenv(k), 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
