// Package list реализует HTTP-обработчик для получения списка устройств.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/device-reservation/internal/http/response"
	"github.com/magabrotheeeer/device-reservation/internal/lib/sl"
	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// Handler обрабатывает запросы на получение списка устройств.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка устройств.
type Service interface {
	List(ctx context.Context) ([]*models.Device, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список устройств
// @Tags Devices
// @Produce  json
// @Success 200 {object} map[string]any "Все устройства"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /devices [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.device.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	devices, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list devices", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list devices"))
		return
	}

	data := make([]map[string]any, 0, len(devices))
	for _, device := range devices {
		data = append(data, device.ToMap())
	}
	render.JSON(w, r, response.StatusOKWithData(data))
}
