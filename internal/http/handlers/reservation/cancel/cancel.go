// Package cancel реализует HTTP-обработчик отмены резервирования.
//
// Отмена идемпотентна: несуществующий ID даёт тот же 204, что и успешное
// удаление.
package cancel

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/device-reservation/internal/http/response"
	"github.com/magabrotheeeer/device-reservation/internal/lib/sl"
)

// Handler обрабатывает запросы на отмену резервирования.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отмены резервирования.
type Service interface {
	Cancel(ctx context.Context, reservationID string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить резервирование
// @Description Удаляет резервирование по ID. Отмена несуществующего ID — тоже 204.
// @Tags Reservations
// @Produce  json
// @Param id path string true "ID резервирования"
// @Success 204 "Резервирование отменено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reservations/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.cancel"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		log.Error("empty id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	if err := h.service.Cancel(r.Context(), reservationID); err != nil {
		log.Error("failed to cancel reservation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not cancel reservation"))
		return
	}

	log.Info("cancelled reservation", slog.String("id", reservationID))
	w.WriteHeader(http.StatusNoContent)
}
