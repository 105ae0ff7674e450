// Package domain описывает доменные ошибки сервиса резервирования.
// Слои оборачивают их через fmt.Errorf с %w, HTTP-обработчики различают
// виды ошибок через errors.Is и errors.As.
package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrValidation — некорректные входные данные: инвентарный номер вне
	// диапазона, пустое имя, занятый номер, нечитаемая дата.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownUser — пользователь не существует.
	ErrUnknownUser = errors.New("user does not exist")
	// ErrUnknownDevice — устройство не существует.
	ErrUnknownDevice = errors.New("device does not exist")
	// ErrInvalidInterval — начало интервала не раньше конца.
	ErrInvalidInterval = errors.New("start date must be before end date")
	// ErrDeviceInactive — устройство помечено неактивным.
	ErrDeviceInactive = errors.New("device is not active")
	// ErrDeviceExpired — дата списания устройства уже в прошлом.
	ErrDeviceExpired = errors.New("device is end-of-life")
	// ErrNotFound — запись с таким идентификатором отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrReferenced — запись нельзя удалить, на неё есть ссылки.
	ErrReferenced = errors.New("entity is still referenced")
	// ErrConflict — маркер пересечения резервирований, см. ConflictError.
	ErrConflict = errors.New("reservation conflict")
)

// ConflictError сообщает о пересечении с существующим резервированием
// и называет его идентификатор и интервал.
type ConflictError struct {
	ReservationID string
	Start         time.Time
	End           time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlaps with reservation %s: %s - %s",
		e.ReservationID,
		e.Start.Format(time.RFC3339),
		e.End.Format(time.RFC3339))
}

// Is позволяет распознавать ConflictError через errors.Is(err, ErrConflict).
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
