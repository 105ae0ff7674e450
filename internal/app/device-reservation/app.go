// Package devicereservation собирает приложение: хранилище, миграции, кеш,
// сервисы и HTTP-сервер с graceful shutdown.
package devicereservation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/device-reservation/internal/cache"
	"github.com/magabrotheeeer/device-reservation/internal/config"
	"github.com/magabrotheeeer/device-reservation/internal/migrations"
	deviceservice "github.com/magabrotheeeer/device-reservation/internal/services/device"
	reservationservice "github.com/magabrotheeeer/device-reservation/internal/services/reservation"
	userservice "github.com/magabrotheeeer/device-reservation/internal/services/user"
	"github.com/magabrotheeeer/device-reservation/internal/storage/repository"
)

// App хранит собранные зависимости приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создаёт приложение: подключает PostgreSQL и Redis, накатывает миграции
// и регистрирует маршруты. Хранилище передаётся сервисам явно, без
// процессных синглтонов.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	userService := userservice.NewUserService(db, logger)
	deviceService := deviceservice.NewDeviceService(db, cacheRedis, logger)
	reservationService := reservationservice.NewReservationService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, userService, deviceService, reservationService)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		_ = a.cache.Db.Close()
		return err
	}
}
