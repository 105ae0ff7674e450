// Package freeids реализует HTTP-обработчик выдачи свободных инвентарных
// номеров. Список питает выпадающее меню формы создания устройства.
package freeids

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/device-reservation/internal/http/response"
	"github.com/magabrotheeeer/device-reservation/internal/lib/sl"
)

// Handler обрабатывает запросы на получение свободных инвентарных номеров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики свободных номеров.
type Service interface {
	FreeIDs(ctx context.Context) ([]int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Свободные инвентарные номера
// @Description Возвращает номера из пула 1..20, не занятые устройствами, по возрастанию.
// @Tags Devices
// @Produce  json
// @Success 200 {object} map[string]any "Свободные номера"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /devices/free-ids [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.device.freeids"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ids, err := h.service.FreeIDs(r.Context())
	if err != nil {
		log.Error("failed to list free ids", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list free ids"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"free_ids": ids,
	}))
}
