package freeids

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockService реализует интерфейс freeids.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) FreeIDs(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func TestFreeIDsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "свободные номера по возрастанию",
			setupMock: func(m *MockService) {
				m.On("FreeIDs", mock.Anything).Return([]int{2, 3, 7}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"free_ids":[2,3,7]`,
		},
		{
			name: "пул полностью занят",
			setupMock: func(m *MockService) {
				m.On("FreeIDs", mock.Anything).Return([]int{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"free_ids":[]`,
		},
		{
			name: "ошибка сервиса",
			setupMock: func(m *MockService) {
				m.On("FreeIDs", mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not list free ids"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/devices/free-ids", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
