// Package services содержит бизнес-логику учёта устройств: проверку
// инвентарных номеров, закрепление ответственных пользователей и выдачу
// свободных номеров из пула 1..20.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/device-reservation/internal/domain"
	"github.com/magabrotheeeer/device-reservation/internal/lib/sl"
	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// DeviceRepository определяет методы для работы с устройствами в хранилище.
type DeviceRepository interface {
	// InsertDevice вставляет новое устройство.
	InsertDevice(ctx context.Context, device models.Device) error
	// UpdateDevice обновляет устройство и возвращает количество обновлённых строк.
	UpdateDevice(ctx context.Context, device models.Device) (int, error)
	// GetDevice возвращает устройство по номеру или nil, если его нет.
	GetDevice(ctx context.Context, deviceID int) (*models.Device, error)
	// ListDevices возвращает все устройства.
	ListDevices(ctx context.Context) ([]*models.Device, error)
	// DeleteDevice удаляет устройство и возвращает количество удалённых строк.
	DeleteDevice(ctx context.Context, deviceID int) (int, error)
	// ExistingDeviceIDs возвращает множество занятых инвентарных номеров.
	ExistingDeviceIDs(ctx context.Context) (map[int]struct{}, error)
	// CountReservationsForDevice возвращает число резервирований устройства.
	CountReservationsForDevice(ctx context.Context, deviceID int) (int, error)
	// GetUser возвращает пользователя по ID или nil, если его нет.
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// DeviceService реализует бизнес-логику учёта устройств, включая кеширование.
type DeviceService struct {
	repo  DeviceRepository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// NewDeviceService создает новый экземпляр DeviceService.
func NewDeviceService(repo DeviceRepository, cache Cache, log *slog.Logger) *DeviceService {
	return &DeviceService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ValidateID проверяет, что инвентарный номер лежит в пуле 1..MaxInventoryID.
func (s *DeviceService) ValidateID(deviceID int) error {
	if deviceID < 1 || deviceID > models.MaxInventoryID {
		return fmt.Errorf("inventory id must be between 1 and %d: %w",
			models.MaxInventoryID, domain.ErrValidation)
	}
	return nil
}

// Create заводит новое устройство: номер в пуле, ответственный пользователь
// существует, номер свободен. Штамп создания и обновления ставится здесь.
// Уникальность номера страхуется первичным ключом хранилища, предварительная
// проверка остаётся обязательной, а не подсказкой.
func (s *DeviceService) Create(ctx context.Context, req models.DummyDevice) (*models.Device, error) {
	device, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}

	if user, err := s.repo.GetUser(ctx, device.ResponsibleUserID); err != nil {
		return nil, err
	} else if user == nil {
		return nil, fmt.Errorf("responsible user %s: %w", device.ResponsibleUserID, domain.ErrUnknownUser)
	}

	existing, err := s.repo.GetDevice(ctx, device.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("inventory id %d already taken: %w", device.ID, domain.ErrValidation)
	}

	now := s.now()
	device.CreationDate = now
	device.LastUpdate = now
	if err := s.repo.InsertDevice(ctx, *device); err != nil {
		return nil, err
	}
	s.log.Info("created device", slog.Int("id", device.ID))

	s.cacheSet(ctx, device)
	return device, nil
}

// Update обновляет существующее устройство с теми же проверками, что и Create,
// кроме занятости номера: вместо неё требуется существование записи.
// creation_date сохраняется, last_update обновляется.
func (s *DeviceService) Update(ctx context.Context, req models.DummyDevice) (*models.Device, error) {
	device, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}

	if user, err := s.repo.GetUser(ctx, device.ResponsibleUserID); err != nil {
		return nil, err
	} else if user == nil {
		return nil, fmt.Errorf("responsible user %s: %w", device.ResponsibleUserID, domain.ErrUnknownUser)
	}

	existing, err := s.repo.GetDevice(ctx, device.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("device %d: %w", device.ID, domain.ErrNotFound)
	}

	device.CreationDate = existing.CreationDate
	device.LastUpdate = s.now()
	if _, err := s.repo.UpdateDevice(ctx, *device); err != nil {
		return nil, err
	}
	s.log.Info("updated device", slog.Int("id", device.ID))

	s.cacheInvalidate(ctx, device.ID)
	s.cacheSet(ctx, device)
	return device, nil
}

// Upsert направляет запрос в Create или Update в зависимости от того,
// существует ли устройство с таким номером.
func (s *DeviceService) Upsert(ctx context.Context, req models.DummyDevice) (*models.Device, error) {
	if err := s.ValidateID(req.ID); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetDevice(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return s.Create(ctx, req)
	}
	return s.Update(ctx, req)
}

// Get возвращает устройство по номеру, используя кеш или хранилище.
func (s *DeviceService) Get(ctx context.Context, deviceID int) (*models.Device, error) {
	if err := s.ValidateID(deviceID); err != nil {
		return nil, err
	}

	cacheKey := deviceCacheKey(deviceID)
	var cached map[string]any
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		device := models.DeviceFromMap(cached)
		return &device, nil
	}

	device, err := s.repo.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, fmt.Errorf("device %d: %w", deviceID, domain.ErrNotFound)
	}
	s.cacheSet(ctx, device)
	return device, nil
}

// List возвращает все устройства без проверки диапазона номеров,
// чтобы старые записи оставались видимыми.
func (s *DeviceService) List(ctx context.Context) ([]*models.Device, error) {
	return s.repo.ListDevices(ctx)
}

// Delete удаляет устройство. Устройство с резервированиями не удаляется.
func (s *DeviceService) Delete(ctx context.Context, deviceID int) error {
	if err := s.ValidateID(deviceID); err != nil {
		return err
	}
	reservations, err := s.repo.CountReservationsForDevice(ctx, deviceID)
	if err != nil {
		return err
	}
	if reservations > 0 {
		return fmt.Errorf("device %d has %d reservations: %w", deviceID, reservations, domain.ErrReferenced)
	}

	count, err := s.repo.DeleteDevice(ctx, deviceID)
	if err != nil {
		return err
	}
	s.log.Info("deleted device", slog.Int("id", deviceID), slog.Int("count", count))

	s.cacheInvalidate(ctx, deviceID)
	return nil
}

// ExistingIDs возвращает множество занятых инвентарных номеров.
func (s *DeviceService) ExistingIDs(ctx context.Context) (map[int]struct{}, error) {
	return s.repo.ExistingDeviceIDs(ctx)
}

// FreeIDs возвращает свободные инвентарные номера по возрастанию.
func (s *DeviceService) FreeIDs(ctx context.Context) ([]int, error) {
	existing, err := s.repo.ExistingDeviceIDs(ctx)
	if err != nil {
		return nil, err
	}
	free := make([]int, 0, models.MaxInventoryID)
	for id := 1; id <= models.MaxInventoryID; id++ {
		if _, ok := existing[id]; !ok {
			free = append(free, id)
		}
	}
	return free, nil
}

// fromRequest собирает доменную модель из DTO, валидируя номер и дату списания.
func (s *DeviceService) fromRequest(req models.DummyDevice) (*models.Device, error) {
	if err := s.ValidateID(req.ID); err != nil {
		return nil, err
	}

	var endOfLife *time.Time
	if req.EndOfLife != "" {
		t, err := time.Parse(time.RFC3339, req.EndOfLife)
		if err != nil {
			return nil, fmt.Errorf("invalid end_of_life date: %w", domain.ErrValidation)
		}
		t = t.UTC()
		endOfLife = &t
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return &models.Device{
		ID:                req.ID,
		Name:              req.Name,
		ResponsibleUserID: req.ResponsibleUserID,
		IsActive:          active,
		EndOfLife:         endOfLife,
	}, nil
}

func deviceCacheKey(deviceID int) string {
	return fmt.Sprintf("device:%d", deviceID)
}

func (s *DeviceService) cacheSet(ctx context.Context, device *models.Device) {
	cacheKey := deviceCacheKey(device.ID)
	if err := s.cache.Set(ctx, cacheKey, device.ToMap(), time.Hour); err != nil {
		s.log.Warn("failed to cache device", slog.String("key", cacheKey), sl.Err(err))
	}
}

func (s *DeviceService) cacheInvalidate(ctx context.Context, deviceID int) {
	cacheKey := deviceCacheKey(deviceID)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
}
