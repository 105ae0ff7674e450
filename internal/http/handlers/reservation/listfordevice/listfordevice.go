// Package listfordevice реализует HTTP-обработчик списка резервирований
// устройства. Резервирования возвращаются по возрастанию даты начала.
package listfordevice

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/device-reservation/internal/http/response"
	"github.com/magabrotheeeer/device-reservation/internal/lib/sl"
	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// Handler обрабатывает запросы на получение резервирований устройства.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка резервирований.
type Service interface {
	ListForDevice(ctx context.Context, deviceID int) ([]*models.Reservation, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Резервирования устройства
// @Tags Reservations
// @Produce  json
// @Param id path int true "Инвентарный номер устройства"
// @Success 200 {object} map[string]any "Резервирования по возрастанию даты начала"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /devices/{id}/reservations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.listfordevice"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	reservations, err := h.service.ListForDevice(r.Context(), id)
	if err != nil {
		log.Error("failed to list reservations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list reservations"))
		return
	}

	data := make([]map[string]any, 0, len(reservations))
	for _, reservation := range reservations {
		data = append(data, reservation.ToMap())
	}
	render.JSON(w, r, response.StatusOKWithData(data))
}
