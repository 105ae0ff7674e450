// Package devicereservation предоставляет маршруты для основного приложения.
package devicereservation

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	devicecreate "github.com/magabrotheeeer/device-reservation/internal/http/handlers/device/create"
	"github.com/magabrotheeeer/device-reservation/internal/http/handlers/device/freeids"
	devicelist "github.com/magabrotheeeer/device-reservation/internal/http/handlers/device/list"
	deviceread "github.com/magabrotheeeer/device-reservation/internal/http/handlers/device/read"
	deviceremove "github.com/magabrotheeeer/device-reservation/internal/http/handlers/device/remove"
	deviceupdate "github.com/magabrotheeeer/device-reservation/internal/http/handlers/device/update"
	"github.com/magabrotheeeer/device-reservation/internal/http/handlers/reservation/cancel"
	reservationcreate "github.com/magabrotheeeer/device-reservation/internal/http/handlers/reservation/create"
	"github.com/magabrotheeeer/device-reservation/internal/http/handlers/reservation/listfordevice"
	userlist "github.com/magabrotheeeer/device-reservation/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/device-reservation/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/device-reservation/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/device-reservation/internal/http/handlers/user/upsert"
	"github.com/magabrotheeeer/device-reservation/internal/http/middlewarectx"
	deviceservice "github.com/magabrotheeeer/device-reservation/internal/services/device"
	reservationservice "github.com/magabrotheeeer/device-reservation/internal/services/reservation"
	userservice "github.com/magabrotheeeer/device-reservation/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	userService *userservice.UserService,
	deviceService *deviceservice.DeviceService,
	reservationService *reservationservice.ReservationService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.RateLimitMiddleware(logger),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", upsert.New(logger, userService).ServeHTTP)
		r.Get("/users", userlist.New(logger, userService).ServeHTTP)
		r.Get("/users/{id}", userread.New(logger, userService).ServeHTTP)
		r.Delete("/users/{id}", userremove.New(logger, userService).ServeHTTP)

		r.Post("/devices", devicecreate.New(logger, deviceService).ServeHTTP)
		r.Get("/devices", devicelist.New(logger, deviceService).ServeHTTP)
		// free-ids раньше параметрического маршрута, иначе chi примет его за {id}
		r.Get("/devices/free-ids", freeids.New(logger, deviceService).ServeHTTP)
		r.Get("/devices/{id}", deviceread.New(logger, deviceService).ServeHTTP)
		r.Put("/devices/{id}", deviceupdate.New(logger, deviceService).ServeHTTP)
		r.Delete("/devices/{id}", deviceremove.New(logger, deviceService).ServeHTTP)
		r.Get("/devices/{id}/reservations", listfordevice.New(logger, reservationService).ServeHTTP)

		r.Post("/reservations", reservationcreate.New(logger, reservationService).ServeHTTP)
		r.Delete("/reservations/{id}", cancel.New(logger, reservationService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
