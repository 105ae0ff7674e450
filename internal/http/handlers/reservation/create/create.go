// Package create реализует HTTP-обработчик создания резервирований.
//
// Handler принимает JSON-запрос с пользователем, устройством и полуоткрытым
// интервалом [start_date, end_date), валидирует его и вызывает конвейер
// проверок сервиса резервирования. При пересечении с существующим
// резервированием возвращается 409 с идентификатором и интервалом конфликта.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/device-reservation/internal/domain"
	"github.com/magabrotheeeer/device-reservation/internal/http/response"
	"github.com/magabrotheeeer/device-reservation/internal/lib/sl"
	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// Handler управляет HTTP-запросами на создание резервирований.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики резервирования
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания резервирования.
type Service interface {
	Create(ctx context.Context, req models.DummyReservation) (*models.Reservation, error)
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
// @Summary Создать резервирование
// @Description Резервирует устройство на полуоткрытый интервал [start_date, end_date).
// @Tags Reservations
// @Accept  json
// @Produce  json
// @Param request body models.DummyReservation true "Данные резервирования"
// @Success 201 {object} map[string]any "Созданное резервирование"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Пользователь или устройство не найдены"
// @Failure 409 {object} response.ErrorResponse "Пересечение с существующим резервированием"
// @Failure 422 {object} response.ErrorResponse "Некорректный интервал, устройство неактивно или списано"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reservations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyReservation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	reservation, err := h.service.Create(r.Context(), req)
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			log.Warn("reservation conflict", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Response{
				Status: response.StatusError,
				Error:  conflict.Error(),
				Data: map[string]any{
					"conflicting_reservation_id": conflict.ReservationID,
					"start_date":                 conflict.Start.Format(time.RFC3339),
					"end_date":                   conflict.End.Format(time.RFC3339),
				},
			})
			return
		}

		status := response.StatusFromError(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to create reservation", sl.Err(err))
			w.WriteHeader(status)
			render.JSON(w, r, response.Error("could not create reservation"))
			return
		}
		log.Warn("rejected reservation", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("created reservation", slog.String("id", reservation.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(reservation.ToMap()))
}
