package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "PORT", "MAX_UPLOAD_BYTES", "EXTRACT_TIMEOUT", "ENABLE_AUTH", "AUDIT_LOG", "CORS_ORIGINS_OFFLINE"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Mode != ModeOffline || c.HTTPAddr != ":3001" {
		t.Fatalf("mode=%s addr=%s", c.Mode, c.HTTPAddr)
	}
	if c.MaxUploadBytes != 25<<20 || c.MaxMarkupBytes != 20<<20 || c.ExtractTimeout != 10*time.Second {
		t.Fatalf("limits=%+v", c)
	}
	if c.EnableAuth || c.AuditLog {
		t.Fatalf("auth/audit should default off offline: %+v", c)
	}
	if len(c.CORSOrigins()) != 2 {
		t.Fatalf("origins=%v", c.CORSOrigins())
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "8088")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("EXTRACT_TIMEOUT", "250ms")
	t.Setenv("CORS_ORIGINS_ONLINE", " https://a.example , ,https://b.example")
	t.Setenv("AUDIT_LOG", "yes")
	t.Setenv("MARKER_LOCALE", "en")

	c := FromEnv()
	if c.HTTPAddr != ":8088" || c.MaxUploadBytes != 1024 || c.ExtractTimeout != 250*time.Millisecond {
		t.Fatalf("got %+v", c)
	}
	if !c.EnableAuth {
		t.Fatal("online mode enables auth by default")
	}
	if !c.AuditLog || c.MarkerLocale != "en" {
		t.Fatalf("got %+v", c)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(c.CORSOrigins(), want) {
		t.Fatalf("origins=%v", c.CORSOrigins())
	}

	t.Setenv("MAX_UPLOAD_BYTES", "-5")
	t.Setenv("EXTRACT_TIMEOUT", "soon")
	c = FromEnv()
	if c.MaxUploadBytes != 25<<20 || c.ExtractTimeout != 10*time.Second {
		t.Fatalf("invalid values must fall back: %+v", c)
	}
}

func TestValidateRejectsDevSecretOnline(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("ENABLE_AUTH", "")
	t.Setenv("AUTH_HMAC_SECRET", "")
	if err := FromEnv().Validate(); err == nil {
		t.Fatal("online mode with the dev secret must be refused")
	}

	t.Setenv("AUTH_HMAC_SECRET", "a-real-secret")
	if err := FromEnv().Validate(); err != nil {
		t.Fatalf("configured secret: %v", err)
	}

	t.Setenv("MODE", "offline")
	t.Setenv("AUTH_HMAC_SECRET", "")
	if err := FromEnv().Validate(); err != nil {
		t.Fatalf("offline dev setup: %v", err)
	}
}
