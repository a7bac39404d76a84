package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"hotel/internal/config"
	"hotel/internal/export"
	"hotel/internal/logging"
	"hotel/internal/service"
	"hotel/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	logger := logging.Component(baseLogger, "export")

	ctx := context.Background()
	store := storage.NewFileStore(cfg.Storage.RoomsPath, cfg.Storage.BookingsPath, logger)
	// Экспорт только читает хранилища
	if err := store.CheckExists(); err != nil {
		logger.Error().Err(err).Msg("Nothing to export")
		return err
	}
	hotel, err := service.NewHotelService(ctx, store, nil, nil, logger)
	if err != nil {
		return err
	}

	path, err := export.ToExcel(cfg.Exports.Path, hotel.Rooms(ctx), hotel.ListBookings(ctx), time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("Export failed")
		return err
	}

	logger.Info().Str("path", path).Msg("Export written")
	fmt.Println(path)
	return nil
}
