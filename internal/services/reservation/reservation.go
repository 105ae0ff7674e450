// Package services содержит бизнес-логику резервирования устройств —
// единственную точку, через которую создаются и отменяются резервирования.
// Прямые записи в хранилище в обход этого сервиса запрещены: именно здесь
// сходятся все межсущностные инварианты.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/device-reservation/internal/domain"
	"github.com/magabrotheeeer/device-reservation/internal/lib/interval"
	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// Repository определяет методы хранилища, нужные сервису резервирования.
type Repository interface {
	// GetUser возвращает пользователя по ID или nil, если его нет.
	GetUser(ctx context.Context, userID string) (*models.User, error)
	// GetDevice возвращает устройство по номеру или nil, если его нет.
	GetDevice(ctx context.Context, deviceID int) (*models.Device, error)
	// InsertReservation вставляет новое резервирование.
	InsertReservation(ctx context.Context, r models.Reservation) error
	// DeleteReservation удаляет резервирование и возвращает количество удалённых строк.
	DeleteReservation(ctx context.Context, reservationID string) (int, error)
	// ListReservationsForDevice возвращает все резервирования устройства.
	ListReservationsForDevice(ctx context.Context, deviceID int) ([]*models.Reservation, error)
}

// ReservationService реализует проверку пересечений и создание резервирований.
type ReservationService struct {
	repo  Repository
	log   *slog.Logger
	now   func() time.Time
	locks *deviceLocks
}

// NewReservationService создает новый экземпляр ReservationService.
func NewReservationService(repo Repository, log *slog.Logger) *ReservationService {
	return &ReservationService{
		repo:  repo,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		locks: newDeviceLocks(),
	}
}

// Create проводит резервирование через полный конвейер проверок:
// корректность интервала, существование пользователя и устройства,
// активность и срок службы устройства, отсутствие пересечений.
// При любой неудаче в хранилище не попадает ни одной записи.
func (s *ReservationService) Create(ctx context.Context, req models.DummyReservation) (*models.Reservation, error) {
	start, end, err := parseInterval(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("interval [%s, %s): %w",
			req.StartDate, req.EndDate, domain.ErrInvalidInterval)
	}

	user, err := s.repo.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", req.UserID, domain.ErrUnknownUser)
	}

	device, err := s.repo.GetDevice(ctx, req.DeviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, fmt.Errorf("device %d: %w", req.DeviceID, domain.ErrUnknownDevice)
	}
	if !device.IsActive {
		return nil, fmt.Errorf("device %d: %w", req.DeviceID, domain.ErrDeviceInactive)
	}
	if device.EndOfLife != nil && device.EndOfLife.Before(s.now()) {
		return nil, fmt.Errorf("device %d: %w", req.DeviceID, domain.ErrDeviceExpired)
	}

	// Проверка пересечений и вставка держатся под замком устройства:
	// между ними не должно пройти конкурирующее резервирование.
	unlock := s.locks.lock(req.DeviceID)
	defer unlock()

	overlaps, err := s.FindOverlaps(ctx, req.DeviceID, start, end)
	if err != nil {
		return nil, err
	}
	if len(overlaps) > 0 {
		conflict := overlaps[0]
		return nil, &domain.ConflictError{
			ReservationID: conflict.ID,
			Start:         conflict.StartDate,
			End:           conflict.EndDate,
		}
	}

	now := s.now()
	reservation := models.Reservation{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		DeviceID:     req.DeviceID,
		StartDate:    start,
		EndDate:      end,
		CreationDate: now,
		LastUpdate:   now,
	}
	if err := s.repo.InsertReservation(ctx, reservation); err != nil {
		return nil, err
	}

	s.log.Info("created reservation",
		slog.String("id", reservation.ID),
		slog.Int("device_id", reservation.DeviceID))
	return &reservation, nil
}

// Cancel отменяет резервирование по ID. Отмена несуществующего ID проходит
// без ошибки — удаление идемпотентно.
func (s *ReservationService) Cancel(ctx context.Context, reservationID string) error {
	count, err := s.repo.DeleteReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	if count == 0 {
		s.log.Info("no reservation to cancel", slog.String("id", reservationID))
		return nil
	}
	s.log.Info("cancelled reservation", slog.String("id", reservationID))
	return nil
}

// ListForDevice возвращает резервирования устройства по возрастанию даты начала.
func (s *ReservationService) ListForDevice(ctx context.Context, deviceID int) ([]*models.Reservation, error) {
	reservations, err := s.repo.ListReservationsForDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].StartDate.Before(reservations[j].StartDate)
	})
	return reservations, nil
}

// FindOverlaps возвращает резервирования устройства, пересекающиеся с
// полуоткрытым интервалом [start, end). Полный проход по резервированиям
// устройства; при росте объёма тело заменяется диапазонным запросом или
// интервальным индексом без изменения контракта.
func (s *ReservationService) FindOverlaps(ctx context.Context, deviceID int, start, end time.Time) ([]*models.Reservation, error) {
	reservations, err := s.repo.ListReservationsForDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	var overlaps []*models.Reservation
	for _, r := range reservations {
		if interval.Overlaps(start, end, r.StartDate, r.EndDate) {
			overlaps = append(overlaps, r)
		}
	}
	return overlaps, nil
}

func parseInterval(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", domain.ErrValidation)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", domain.ErrValidation)
	}
	return start.UTC(), end.UTC(), nil
}
