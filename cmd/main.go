package main

import (
	"context"
	"log/slog"

	"github.com/SiddharthNagaych-aigod/axel-guard-prod/api"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/config"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/content"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/crm"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/storage"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/store"
)

func main() {
	ctx := context.Background()

	// Getting the config
	cfg := config.New()

	// Storage backend selection happens only here; handlers and business
	// logic see a single interface.
	var backend api.ContentStore
	switch cfg.StorageMode {
	case config.ModeDatabase:
		s, err := store.New(ctx, cfg.Dsn())
		if err != nil {
			slog.Error("Database initialization failed", "error", err)
			panic(err)
		}
		defer s.Close()
		backend = s
	case config.ModeCloud:
		blob, err := storage.NewCloudStore(
			cfg.CloudName,
			cfg.CloudinaryKey,
			cfg.CloudinarySecret,
			cfg.CloudPrefix,
			cfg.DataDir,
		)
		if err != nil {
			slog.Error("Cloud storage initialization failed", "error", err)
			panic(err)
		}
		backend = content.New(blob)
	default:
		backend = content.New(storage.NewFileStore(cfg.DataDir))
	}

	relay := crm.NewNeoDove(cfg.NeoDoveURL)

	// Running the server
	server, err := api.New(backend, relay)
	if err != nil {
		slog.Error("Api initialization failed", "error", err)
		panic(err)
	}
	server.Run(cfg.ServerPort())
}
