package main

// One-shot alert sweep, intended for cron:
//   go run ./cmd/alertcheck

import (
	"context"
	"log"
	"os"

	"inboxqualify-backend/internal/alerts"
	"inboxqualify-backend/internal/analytics"
	"inboxqualify-backend/internal/shared/config"
	"inboxqualify-backend/internal/shared/storage/db"
	"inboxqualify-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.SMTPHost == "" || len(cfg.AlertRecipients) == 0 {
		log.Printf("alerting not configured: SMTP_HOST and ALERT_RECIPIENTS are required")
		os.Exit(1)
	}

	var repo analytics.Repo
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database: %v", err)
			os.Exit(1)
		}
		defer sqlDB.Close()
		repo = analytics.NewPGRepo(sqlDB)
	} else {
		repo = analytics.NewMemoryRepo()
	}

	mailer := alerts.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	checker := alerts.NewChecker(repo, mailer, cfg.AlertRecipients)

	sent, err := checker.RunChecks(ctx)
	if err != nil {
		log.Printf("alert checks failed: %v", err)
		os.Exit(1)
	}
	telemetry.Info("alerts.sweep.complete", map[string]any{"alerts_sent": sent})
}
