// Package remove реализует HTTP-обработчик удаления устройства.
//
// Устройство с резервированиями не удаляется — обработчик возвращает 422.
package remove

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
)

// Handler обрабатывает запросы на удаление устройства.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления устройства.
type Service interface {
	Delete(ctx context.Context, deviceID int) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить устройство
// @Tags Devices
// @Produce  json
// @Param id path int true "Инвентарный номер"
// @Success 204 "Устройство удалено"
// @Failure 422 {object} response.ErrorResponse "Устройство зарезервировано"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /devices/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.device.remove"

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

	if err := h.service.Delete(r.Context(), id); err != nil {
		status := response.StatusFromError(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to delete device", sl.Err(err))
			w.WriteHeader(status)
			render.JSON(w, r, response.Error("could not delete device"))
			return
		}
		log.Warn("rejected device delete", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("deleted device", slog.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}
