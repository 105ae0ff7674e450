// Package remove реализует HTTP-обработчик удаления пользователя.
//
// Пользователь с закреплёнными устройствами или резервированиями не
// удаляется — обработчик возвращает 422 с описанием причины.
package remove

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

// Handler обрабатывает запросы на удаление пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления пользователя.
type Service interface {
	Delete(ctx context.Context, userID string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить пользователя
// @Tags Users
// @Produce  json
// @Param id path string true "ID пользователя (email)"
// @Success 204 "Пользователь удалён"
// @Failure 422 {object} response.ErrorResponse "Пользователь используется"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")
	if userID == "" {
		log.Error("empty id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		status := response.StatusFromError(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to delete user", sl.Err(err))
			w.WriteHeader(status)
			render.JSON(w, r, response.Error("could not delete user"))
			return
		}
		log.Warn("rejected user delete", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("deleted user", slog.String("id", userID))
	w.WriteHeader(http.StatusNoContent)
}
