// Package read реализует HTTP-обработчик для получения устройства по номеру.
package read

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

// Handler обрабатывает запросы на получение устройства по инвентарному номеру.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения устройства.
type Service interface {
	Get(ctx context.Context, deviceID int) (*models.Device, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить устройство
// @Tags Devices
// @Produce  json
// @Param id path int true "Инвентарный номер"
// @Success 200 {object} map[string]any "Данные устройства"
// @Failure 404 {object} response.ErrorResponse "Устройство не найдено"
// @Failure 422 {object} response.ErrorResponse "Номер вне пула 1..20"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /devices/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.device.read"

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

	device, err := h.service.Get(r.Context(), id)
	if err != nil {
		status := response.StatusFromError(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to read device", sl.Err(err))
			w.WriteHeader(status)
			render.JSON(w, r, response.Error("could not read device"))
			return
		}
		log.Warn("device not available", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(device.ToMap()))
}
