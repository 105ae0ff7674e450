// Package services содержит бизнес-логику работы с пользователями.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/device-reservation/internal/domain"
	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// UpsertUser вставляет или обновляет пользователя.
	UpsertUser(ctx context.Context, user models.User) error
	// GetUser возвращает пользователя по ID или nil, если его нет.
	GetUser(ctx context.Context, userID string) (*models.User, error)
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// DeleteUser удаляет пользователя и возвращает количество удалённых строк.
	DeleteUser(ctx context.Context, userID string) (int, error)
	// CountDevicesForUser возвращает число устройств, закреплённых за пользователем.
	CountDevicesForUser(ctx context.Context, userID string) (int, error)
	// CountReservationsForUser возвращает число резервирований пользователя.
	CountReservationsForUser(ctx context.Context, userID string) (int, error)
}

// UserService реализует бизнес-логику работы с пользователями.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Upsert создаёт пользователя или обновляет имя существующего.
// Дата создания у существующей записи сохраняется, last_update обновляется.
func (s *UserService) Upsert(ctx context.Context, req models.DummyUser) (*models.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name must not be empty: %w", domain.ErrValidation)
	}

	existing, err := s.repo.GetUser(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := models.User{
		ID:           req.ID,
		Name:         req.Name,
		CreationDate: now,
		LastUpdate:   now,
	}
	if existing != nil {
		user.CreationDate = existing.CreationDate
	}

	if err := s.repo.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("upserted user", slog.String("id", user.ID))
	return &user, nil
}

// Get возвращает пользователя по ID.
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return user, nil
}

// List возвращает всех пользователей.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Delete удаляет пользователя. Пользователь, за которым закреплены устройства
// или резервирования, не удаляется — иначе остались бы висячие ссылки.
// Удаление отсутствующего пользователя проходит без ошибки.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	devices, err := s.repo.CountDevicesForUser(ctx, userID)
	if err != nil {
		return err
	}
	reservations, err := s.repo.CountReservationsForUser(ctx, userID)
	if err != nil {
		return err
	}
	if devices > 0 || reservations > 0 {
		return fmt.Errorf("user %s has %d devices and %d reservations: %w",
			userID, devices, reservations, domain.ErrReferenced)
	}

	count, err := s.repo.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}
	s.log.Info("deleted user", slog.String("id", userID), slog.Int("count", count))
	return nil
}
