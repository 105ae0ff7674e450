// Package update реализует HTTP-обработчик обновления устройства.
//
// Инвентарный номер берётся из URL и должен совпадать с телом запроса;
// дата создания записи сохраняется, last_update обновляется сервисом.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/device-reservation/internal/http/response"
	"github.com/magabrotheeeer/device-reservation/internal/lib/sl"
	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// Handler управляет HTTP-запросами на обновление устройств.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления устройства.
type Service interface {
	Update(ctx context.Context, req models.DummyDevice) (*models.Device, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить устройство
// @Tags Devices
// @Accept  json
// @Produce  json
// @Param id path int true "Инвентарный номер"
// @Param request body models.DummyDevice true "Новые данные устройства"
// @Success 200 {object} map[string]any "Обновлённое устройство"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или id"
// @Failure 404 {object} response.ErrorResponse "Устройство не найдено"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /devices/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.device.update"
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

	var req models.DummyDevice
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if req.ID == 0 {
		req.ID = id
	}
	if req.ID != id {
		log.Error("id mismatch between url and body")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("id in body does not match url"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	device, err := h.service.Update(r.Context(), req)
	if err != nil {
		status := response.StatusFromError(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to update device", sl.Err(err))
			w.WriteHeader(status)
			render.JSON(w, r, response.Error("could not update device"))
			return
		}
		log.Warn("rejected device update", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("updated device", slog.Int("id", device.ID))
	render.JSON(w, r, response.StatusOKWithData(device.ToMap()))
}
