package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"architect/internal/adapters/email"
	web "architect/internal/adapters/http"
	"architect/internal/adapters/storage"
	accountStore "architect/internal/adapters/storage/account"
	catalogStore "architect/internal/adapters/storage/catalog"
	planStore "architect/internal/adapters/storage/plan"
	sessionStore "architect/internal/adapters/storage/session"
	"architect/internal/application/orchestrators"
)

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	dbPath := envOrDefault("ARCHITECT_DB", "architect.db")
	addr := envOrDefault("ARCHITECT_ADDR", ":8080")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := storage.InitDB(db); err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	stores := &web.Stores{
		AccountStore: accountStore.NewSQLiteStore(db),
		CatalogStore: catalogStore.NewSQLiteStore(db),
		PlanStore:    planStore.NewSQLiteStore(db),
		SessionStore: sessionStore.NewSQLiteStore(db),
	}

	ctx := context.Background()
	seedDeps := orchestrators.CreateAccountDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   func() string { return uuid.New().String() },
		Now:          time.Now,
	}
	adminEmail := envOrDefault("ARCHITECT_ADMIN_EMAIL", "admin@localhost")
	adminPassword := envOrDefault("ARCHITECT_ADMIN_PASSWORD", "change-me-please")
	if err := orchestrators.ExecuteSeedAdmin(ctx, seedDeps, adminEmail, adminPassword); err != nil {
		slog.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}
	if err := orchestrators.ExecuteSeedBaseCatalog(ctx, orchestrators.SeedCatalogDeps{
		CatalogStore: stores.CatalogStore,
		GenerateID:   func() string { return uuid.New().String() },
	}); err != nil {
		slog.Error("failed to seed base catalog", "error", err)
		os.Exit(1)
	}

	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		from := envOrDefault("ARCHITECT_EMAIL_FROM", "Architect <plans@localhost>")
		web.SetEmailSender(email.NewResendSender(apiKey, from))
	} else {
		slog.Warn("RESEND_API_KEY not set, emailing plans is disabled")
		web.SetEmailSender(email.NewNoopSender())
	}

	handler := web.NewMux(stores)

	slog.Info("server_started", "addr", addr, "db", dbPath)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
