package upsert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// MockService реализует интерфейс upsert.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Upsert(ctx context.Context, req models.DummyUser) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestUpsertHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	saved := &models.User{
		ID:           "anna@example.com",
		Name:         "Anna",
		CreationDate: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		LastUpdate:   time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное сохранение пользователя",
			requestBody: models.DummyUser{ID: "anna@example.com", Name: "Anna"},
			setupMock: func(m *MockService) {
				m.On("Upsert", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(saved, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"anna@example.com"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "id не является адресом почты",
			requestBody:    models.DummyUser{ID: "not-an-email", Name: "Anna"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "пустое имя",
			requestBody:    models.DummyUser{ID: "anna@example.com", Name: ""},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:        "ошибка сервиса",
			requestBody: models.DummyUser{ID: "anna@example.com", Name: "Anna"},
			setupMock: func(m *MockService) {
				m.On("Upsert", mock.Anything, mock.AnythingOfType("models.DummyUser")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not upsert user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}

			mockService.AssertExpectations(t)
		})
	}
}
