// Package parkingpermits предоставляет маршруты для основного приложения.
package parkingpermits

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/parking-permits/internal/api/handlers/auth/login"
	"github.com/magabrotheeeer/parking-permits/internal/api/handlers/auth/passwordchange"
	"github.com/magabrotheeeer/parking-permits/internal/api/handlers/auth/profileupdate"
	"github.com/magabrotheeeer/parking-permits/internal/api/handlers/auth/register"
	"github.com/magabrotheeeer/parking-permits/internal/api/handlers/auth/session"
	"github.com/magabrotheeeer/parking-permits/internal/api/handlers/health"
	paymentlist "github.com/magabrotheeeer/parking-permits/internal/api/handlers/payment/list"
	permitlist "github.com/magabrotheeeer/parking-permits/internal/api/handlers/permit/list"
	"github.com/magabrotheeeer/parking-permits/internal/api/handlers/permit/purchase"
	vehicleadd "github.com/magabrotheeeer/parking-permits/internal/api/handlers/vehicle/add"
	vehiclelist "github.com/magabrotheeeer/parking-permits/internal/api/handlers/vehicle/list"
	vehicleremove "github.com/magabrotheeeer/parking-permits/internal/api/handlers/vehicle/remove"
	"github.com/magabrotheeeer/parking-permits/internal/api/middlewarectx"
	authservice "github.com/magabrotheeeer/parking-permits/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/parking-permits/internal/services/payment"
	permitservice "github.com/magabrotheeeer/parking-permits/internal/services/permit"
	vehicleservice "github.com/magabrotheeeer/parking-permits/internal/services/vehicle"
	"github.com/magabrotheeeer/parking-permits/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *storage.Storage,
	authService *authservice.AuthService,
	permitService *permitservice.PermitService,
	vehicleService *vehicleservice.VehicleService,
	paymentService *paymentservice.PaymentService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(logger, authService))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/session", session.New(logger, authService).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, authService).ServeHTTP)
			r.Put("/password", passwordchange.New(logger, authService).ServeHTTP)

			r.Post("/permits", purchase.New(logger, permitService).ServeHTTP)
			r.Get("/permits", permitlist.New(logger, permitService).ServeHTTP)

			r.Post("/vehicles", vehicleadd.New(logger, vehicleService).ServeHTTP)
			r.Get("/vehicles", vehiclelist.New(logger, vehicleService).ServeHTTP)
			r.Delete("/vehicles/{vehicleId}", vehicleremove.New(logger, vehicleService).ServeHTTP)

			r.Get("/payments", paymentlist.New(logger, paymentService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
