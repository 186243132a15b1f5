// Command migrate applies the embedded schema migrations.
//
//	go run ./cmd/migrate [up|down|step-up|drop]
package main

import (
	"log/slog"
	"os"

	"restaurant-booking/internal/infra/migrate"
	"restaurant-booking/internal/pkg/config"
)

func main() {
	action := migrate.ActionUp
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	cfg, err := config.LoadDBConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := migrate.Run(migrate.DatabaseURL(cfg), action); err != nil {
		slog.Error("migration failed", "action", action, "error", err)
		os.Exit(1)
	}
}
