package main

import (
	"flag"
	"log/slog"
	"os"

	"previsit-intake/internal/infra/db"
	"previsit-intake/internal/pkg/config"

	"github.com/kelseyhightower/envconfig"
)

func main() {
	force := flag.Int("force", -1, "force the schema to this version and exit")
	flag.Parse()

	var cfg config.DBConfig
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("failed to load database config", "error", err)
		os.Exit(1)
	}
	dsn := cfg.BuildDSN()

	if *force >= 0 {
		if err := db.Force(dsn, *force); err != nil {
			slog.Error("force failed", "version", *force, "error", err)
			os.Exit(1)
		}
		slog.Info("schema version forced", "version", *force)
		return
	}

	if err := db.Migrate(dsn); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "database", cfg.DBName)
}
