package response

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/device-reservation/internal/domain"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "пересечение резервирований",
			err:  &domain.ConflictError{ReservationID: "some-id"},
			want: http.StatusConflict,
		},
		{
			name: "неизвестный пользователь",
			err:  fmt.Errorf("user x: %w", domain.ErrUnknownUser),
			want: http.StatusNotFound,
		},
		{
			name: "неизвестное устройство",
			err:  fmt.Errorf("device 5: %w", domain.ErrUnknownDevice),
			want: http.StatusNotFound,
		},
		{
			name: "запись не найдена",
			err:  domain.ErrNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "ошибка валидации",
			err:  fmt.Errorf("inventory id must be between 1 and 20: %w", domain.ErrValidation),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "некорректный интервал",
			err:  domain.ErrInvalidInterval,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "неактивное устройство",
			err:  domain.ErrDeviceInactive,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "списанное устройство",
			err:  domain.ErrDeviceExpired,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "сущность используется",
			err:  fmt.Errorf("user x has 2 devices: %w", domain.ErrReferenced),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "неизвестная ошибка",
			err:  fmt.Errorf("db down"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	type request struct {
		ID     int    `validate:"required,gte=1,lte=20"`
		UserID string `validate:"required,email"`
		Name   string `validate:"required"`
	}

	err := validator.New().Struct(request{ID: 42, UserID: "not-an-email"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field ID must be less or equal 20")
	assert.Contains(t, resp.Error, "field UserID must be an email address")
	assert.Contains(t, resp.Error, "field Name is a required field")
}
