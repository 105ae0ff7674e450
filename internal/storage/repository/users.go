package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// UpsertUser вставляет пользователя или обновляет имя и last_update
// существующего. creation_date при обновлении сохраняется.
func (s *Storage) UpsertUser(ctx context.Context, user models.User) error {
	const op = "storage.UpsertUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, name, creation_date, last_update)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (id) DO UPDATE
			  SET name = EXCLUDED.name, last_update = EXCLUDED.last_update`
	if _, err := s.DB.ExecContext(ctx, query,
		user.ID, user.Name, user.CreationDate, user.LastUpdate); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser возвращает пользователя по его ID.
// Возвращает (nil, nil), если запись отсутствует.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, creation_date, last_update
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&u.ID, &u.Name, &u.CreationDate, &u.LastUpdate); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, creation_date, last_update FROM users`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.Name, &u.CreationDate, &u.LastUpdate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteUser удаляет пользователя по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteUser(ctx context.Context, userID string) (int, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountDevicesForUser возвращает число устройств, за которые отвечает пользователь.
func (s *Storage) CountDevicesForUser(ctx context.Context, userID string) (int, error) {
	const op = "storage.CountDevicesForUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM devices WHERE responsible_user_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountReservationsForUser возвращает число резервирований пользователя.
func (s *Storage) CountReservationsForUser(ctx context.Context, userID string) (int, error) {
	const op = "storage.CountReservationsForUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
