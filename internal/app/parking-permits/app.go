// Package parkingpermits собирает и запускает основное HTTP-приложение.
package parkingpermits

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/parking-permits/internal/cache"
	"github.com/magabrotheeeer/parking-permits/internal/config"
	"github.com/magabrotheeeer/parking-permits/internal/lib/jwt"
	"github.com/magabrotheeeer/parking-permits/internal/migrations"
	authservice "github.com/magabrotheeeer/parking-permits/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/parking-permits/internal/services/payment"
	permitservice "github.com/magabrotheeeer/parking-permits/internal/services/permit"
	vehicleservice "github.com/magabrotheeeer/parking-permits/internal/services/vehicle"
	"github.com/magabrotheeeer/parking-permits/internal/storage"
)

// App объединяет HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

// New инициализирует хранилище, миграции, кэш и все сервисы приложения.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker, cfg.AllowedEmailDomain)
	permitService := permitservice.NewPermitService(db, cacheRedis, logger)
	vehicleService := vehicleservice.NewVehicleService(db, cacheRedis, logger)
	paymentService := paymentservice.NewPaymentService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, authService, permitService, vehicleService, paymentService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его по отмене контекста.
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
		a.db.DB.Close()
		return err
	}
}
