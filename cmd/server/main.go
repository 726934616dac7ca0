package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sunethdesoyza/lyst-backend/internal/api"
	"github.com/sunethdesoyza/lyst-backend/internal/config"
	"github.com/sunethdesoyza/lyst-backend/internal/store"
	"github.com/sunethdesoyza/lyst-backend/internal/store/memory"
	"github.com/sunethdesoyza/lyst-backend/internal/store/postgres"
	"github.com/sunethdesoyza/lyst-backend/internal/websocket"
	"github.com/sunethdesoyza/lyst-backend/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	hub := websocket.NewHub()
	go hub.Run()

	router := api.SetupRouter(st, cfg, hub)

	slog.Info("server starting",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage", cfg.Database.Driver,
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.Database.Driver == "memory" {
		slog.Warn("using in-memory storage, data will not survive restarts")
		return memory.New(), nil
	}
	return postgres.New(context.Background(), cfg.Database.DSN())
}
