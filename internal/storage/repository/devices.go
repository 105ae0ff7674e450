package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/device-reservation/internal/domain"
	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// InsertDevice вставляет новое устройство. Первичный ключ по инвентарному
// номеру — последний рубеж против гонки двух конкурентных create: нарушение
// уникальности переводится в доменную ошибку занятого номера.
func (s *Storage) InsertDevice(ctx context.Context, device models.Device) error {
	const op = "storage.InsertDevice"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO devices (id, name, responsible_user_id, is_active,
			      end_of_life, creation_date, last_update)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		device.ID, device.Name, device.ResponsibleUserID, device.IsActive,
		device.EndOfLife, device.CreationDate, device.LastUpdate)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: inventory id %d already taken: %w", op, device.ID, domain.ErrValidation)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateDevice обновляет устройство по инвентарному номеру, не трогая
// creation_date. Возвращает количество обновлённых строк.
func (s *Storage) UpdateDevice(ctx context.Context, device models.Device) (int, error) {
	const op = "storage.UpdateDevice"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE devices
			  SET name = $2, responsible_user_id = $3, is_active = $4,
			      end_of_life = $5, last_update = $6
			  WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query,
		device.ID, device.Name, device.ResponsibleUserID, device.IsActive,
		device.EndOfLife, device.LastUpdate)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetDevice возвращает устройство по инвентарному номеру.
// Возвращает (nil, nil), если запись отсутствует.
func (s *Storage) GetDevice(ctx context.Context, deviceID int) (*models.Device, error) {
	const op = "storage.GetDevice"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, responsible_user_id, is_active, end_of_life,
			      creation_date, last_update
			  FROM devices
			  WHERE id = $1`
	d := &models.Device{}
	var endOfLife sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, deviceID)
	if err := row.Scan(&d.ID, &d.Name, &d.ResponsibleUserID, &d.IsActive,
		&endOfLife, &d.CreationDate, &d.LastUpdate); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if endOfLife.Valid {
		d.EndOfLife = &endOfLife.Time
	}
	return d, nil
}

// ListDevices возвращает все устройства. Диапазон номеров здесь намеренно
// не проверяется, чтобы старые записи оставались видимыми.
func (s *Storage) ListDevices(ctx context.Context) ([]*models.Device, error) {
	const op = "storage.ListDevices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, responsible_user_id, is_active, end_of_life,
			      creation_date, last_update
			  FROM devices
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Device
	for rows.Next() {
		var d models.Device
		var endOfLife sql.NullTime
		if err = rows.Scan(&d.ID, &d.Name, &d.ResponsibleUserID, &d.IsActive,
			&endOfLife, &d.CreationDate, &d.LastUpdate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if endOfLife.Valid {
			d.EndOfLife = &endOfLife.Time
		}
		result = append(result, &d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteDevice удаляет устройство и возвращает количество удалённых строк.
func (s *Storage) DeleteDevice(ctx context.Context, deviceID int) (int, error) {
	const op = "storage.DeleteDevice"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM devices WHERE id = $1`, deviceID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ExistingDeviceIDs возвращает множество занятых инвентарных номеров.
func (s *Storage) ExistingDeviceIDs(ctx context.Context) (map[int]struct{}, error) {
	const op = "storage.ExistingDeviceIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id FROM devices`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	ids := make(map[int]struct{})
	for rows.Next() {
		var id int
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids[id] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}

// CountReservationsForDevice возвращает число резервирований устройства.
func (s *Storage) CountReservationsForDevice(ctx context.Context, deviceID int) (int, error) {
	const op = "storage.CountReservationsForDevice"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM reservations WHERE device_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, deviceID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
