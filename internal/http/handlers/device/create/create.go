// Package create реализует HTTP-обработчик создания устройств.
//
// Handler принимает JSON-запрос с данными устройства, валидирует их,
// вызывает бизнес-логику создания и возвращает созданную запись.
// Инвентарный номер должен быть свободен и лежать в пуле 1..20,
// ответственный пользователь — существовать.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/device-reservation/internal/http/response"
	"github.com/magabrotheeeer/device-reservation/internal/lib/sl"
	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// Handler управляет HTTP-запросами на создание устройств.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для устройств
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания устройства.
type Service interface {
	Create(ctx context.Context, req models.DummyDevice) (*models.Device, error)
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
// @Summary Создать устройство
// @Description Создает устройство со свободным инвентарным номером из пула 1..20.
// @Tags Devices
// @Accept  json
// @Produce  json
// @Param request body models.DummyDevice true "Данные нового устройства"
// @Success 201 {object} map[string]any "Созданное устройство"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Ответственный пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Номер вне пула или занят"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /devices [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.device.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyDevice
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

	device, err := h.service.Create(r.Context(), req)
	if err != nil {
		status := response.StatusFromError(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to create device", sl.Err(err))
			w.WriteHeader(status)
			render.JSON(w, r, response.Error("could not create device"))
			return
		}
		log.Warn("rejected device create", sl.Err(err))
		w.WriteHeader(status)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("created device", slog.Int("id", device.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(device.ToMap()))
}
