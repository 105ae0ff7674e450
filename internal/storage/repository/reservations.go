package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/device-reservation/internal/models"
)

// InsertReservation вставляет новое резервирование.
func (s *Storage) InsertReservation(ctx context.Context, r models.Reservation) error {
	const op = "storage.InsertReservation"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO reservations (id, user_id, device_id, start_date,
			      end_date, creation_date, last_update)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.DB.ExecContext(ctx, query,
		r.ID, r.UserID, r.DeviceID, r.StartDate, r.EndDate,
		r.CreationDate, r.LastUpdate); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteReservation удаляет резервирование по ID и возвращает количество
// удалённых строк. Удаление несуществующего ID — это ноль строк, не ошибка.
func (s *Storage) DeleteReservation(ctx context.Context, reservationID string) (int, error) {
	const op = "storage.DeleteReservation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, reservationID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetReservation возвращает резервирование по ID.
// Возвращает (nil, nil), если запись отсутствует.
func (s *Storage) GetReservation(ctx context.Context, reservationID string) (*models.Reservation, error) {
	const op = "storage.GetReservation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, device_id, start_date, end_date,
			      creation_date, last_update
			  FROM reservations
			  WHERE id = $1`
	r := &models.Reservation{}
	row := s.DB.QueryRowContext(ctx, query, reservationID)
	if err := row.Scan(&r.ID, &r.UserID, &r.DeviceID, &r.StartDate, &r.EndDate,
		&r.CreationDate, &r.LastUpdate); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ListReservationsForDevice возвращает все резервирования устройства.
// Порядок строк не гарантируется, сортировка — забота вызывающего.
func (s *Storage) ListReservationsForDevice(ctx context.Context, deviceID int) ([]*models.Reservation, error) {
	const op = "storage.ListReservationsForDevice"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, device_id, start_date, end_date,
			      creation_date, last_update
			  FROM reservations
			  WHERE device_id = $1`
	rows, err := s.DB.QueryContext(ctx, query, deviceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Reservation
	for rows.Next() {
		var r models.Reservation
		if err = rows.Scan(&r.ID, &r.UserID, &r.DeviceID, &r.StartDate, &r.EndDate,
			&r.CreationDate, &r.LastUpdate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListReservations возвращает все резервирования.
func (s *Storage) ListReservations(ctx context.Context) ([]*models.Reservation, error) {
	const op = "storage.ListReservations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, device_id, start_date, end_date,
			      creation_date, last_update
			  FROM reservations`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Reservation
	for rows.Next() {
		var r models.Reservation
		if err = rows.Scan(&r.ID, &r.UserID, &r.DeviceID, &r.StartDate, &r.EndDate,
			&r.CreationDate, &r.LastUpdate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
