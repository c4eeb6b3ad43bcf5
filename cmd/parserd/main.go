package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/ceo575/flowmapga/internal/api/http"
	"github.com/ceo575/flowmapga/internal/audit"
	auth "github.com/ceo575/flowmapga/internal/auth/middleware"
	"github.com/ceo575/flowmapga/internal/config"
	"github.com/ceo575/flowmapga/internal/db"
)

func main() {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	deps := api.Deps{}

	// --- Audit log (optional) ---
	if cfg.AuditLog {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		cancel()
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		defer dbh.Close()
		deps.Audit = audit.NewRepo(dbh)
	}

	// --- Auth (teacher login + bearer guard) ---
	if cfg.EnableAuth {
		creds, err := auth.NewCredentials(cfg.TeacherUser, cfg.TeacherPassHash, cfg.TeacherPassword)
		if err != nil {
			log.Fatalf("auth enabled but teacher credentials invalid: %v (set TEACHER_PASS_HASH)", err)
		}
		deps.Auth = auth.NewAuthService(cfg.AuthHMACSecret)
		deps.Creds = creds
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Printf("docx parser API listening on %s (mode=%s, auth=%t, audit=%t)", cfg.HTTPAddr, cfg.Mode, cfg.EnableAuth, cfg.AuditLog)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
