package main

import (
	"log"

	"inboxqualify-backend/internal/bootstrap"
	"inboxqualify-backend/internal/shared/config"
	"inboxqualify-backend/internal/shared/server"
	"inboxqualify-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer func() {
		if app.DB != nil {
			app.DB.Close()
		}
	}()

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.starting", map[string]any{
		"addr":    addr,
		"env":     cfg.Env,
		"version": bootstrap.Version,
	})

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
