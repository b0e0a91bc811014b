package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/deskboard/internal/config"
	"github.com/MrJamesThe3rd/deskboard/internal/fakeapi"
	deskHttp "github.com/MrJamesThe3rd/deskboard/internal/http"
	recordsHandler "github.com/MrJamesThe3rd/deskboard/internal/http/records"
	summaryHandler "github.com/MrJamesThe3rd/deskboard/internal/http/summary"
	"github.com/MrJamesThe3rd/deskboard/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	store := fakeapi.NewSeeded(cfg.FakeAPI.Seed)

	var (
		recordsH = recordsHandler.NewHandler(store)
		summaryH = summaryHandler.NewHandler(store)
	)

	router := deskHttp.New(recordsH, summaryH, cfg.FakeAPI.AllowedOrigins)

	addr := cfg.ListenAddr()
	slog.Info("starting fake api", "addr", addr, "seeded", cfg.FakeAPI.Seed)

	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
