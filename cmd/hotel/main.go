package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"hotel/internal/backup"
	"hotel/internal/config"
	"hotel/internal/domain"
	"hotel/internal/events"
	"hotel/internal/logging"
	"hotel/internal/metrics"
	"hotel/internal/models"
	"hotel/internal/repository"
	"hotel/internal/service"
	"hotel/internal/shell"
	"hotel/internal/storage"
	"hotel/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	// Interrupts are left to the default handler: every mutation is already
	// on disk when the shell waits for input.
	ctx := context.Background()

	redisClient, registry := initIDRegistry(ctx, cfg, logger)
	defer func() { _ = repository.Close(redisClient) }()

	store := storage.NewFileStore(cfg.Storage.RoomsPath, cfg.Storage.BookingsPath, logging.Component(logger, "storage"))
	eventBus := events.NewEventBus()

	hotel, err := service.NewHotelService(ctx, store, registry, eventBus, logging.Component(logger, "hotel"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load hotel state")
		return err
	}

	metrics.Register()
	updateAvailability(ctx, hotel)
	subscribeBookingEvents(ctx, eventBus, hotel, logger)

	if cfg.Monitoring.PrometheusEnabled {
		srv := metrics.NewServer(cfg.Monitoring.PrometheusPort)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Metrics server error")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	backupService := backup.NewService(hotel, cfg.Backup, logging.Component(logger, "backup"))
	backupService.Snapshot(ctx)

	err = shell.New(hotel, os.Stdin, os.Stdout, logging.Component(logger, "shell")).Run(ctx)

	backupService.Snapshot(ctx)
	logger.Info().Msg("Shutdown complete.")
	return err
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logging.Component(baseLogger, "hotel-main"), closer, nil
}

func initIDRegistry(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, domain.IDRegistry) {
	fallback := repository.NewMemoryIDRegistry()
	if cfg.Redis.Address == "" {
		return nil, fallback
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	policy := worker.RetryPolicy{MaxRetries: 2, InitialDelay: 500 * time.Millisecond, MaxDelay: 2 * time.Second, BackoffFactor: 2}
	if err := worker.Retry(ctx, policy, func(ctx context.Context) error {
		return repository.Ping(ctx, redisClient)
	}); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, booking ids tracked in memory")
	}

	primary := repository.NewRedisIDRegistry(redisClient)
	return redisClient, repository.NewFailoverIDRegistry(primary, fallback, logging.Component(logger, "id-registry"))
}

func updateAvailability(ctx context.Context, hotel domain.HotelService) {
	for _, category := range models.Categories {
		metrics.SetRoomsAvailable(category, len(hotel.ListAvailable(ctx, category)))
	}
}

func subscribeBookingEvents(
	ctx context.Context,
	bus *events.EventBus,
	hotel domain.HotelService,
	logger *zerolog.Logger,
) {
	decode := func(ev *events.Event) (events.BookingEventPayload, bool) {
		var payload events.BookingEventPayload
		if err := ev.Decode(&payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return payload, false
		}
		return payload, true
	}

	bus.Subscribe(events.EventBookingCreated, func(ev *events.Event) error {
		payload, ok := decode(ev)
		if !ok {
			return nil
		}
		metrics.IncBookingCreated(payload.Category)
		updateAvailability(ctx, hotel)
		logger.Info().
			Str("booking_id", payload.BookingID).
			Int("room", payload.RoomNumber).
			Int("price", payload.Price).
			Msg("Payment simulated")
		return nil
	})

	bus.Subscribe(events.EventBookingCanceled, func(ev *events.Event) error {
		payload, ok := decode(ev)
		if !ok {
			return nil
		}
		metrics.IncBookingCanceled(payload.Category)
		updateAvailability(ctx, hotel)
		return nil
	})
}
