package models

import "time"

// Reservation представляет резервирование устройства на полуоткрытый
// интервал [StartDate, EndDate): момент EndDate уже свободен.
type Reservation struct {
	ID           string    // UUID, выдаётся сервисом при создании
	UserID       string    // Электронная почта резервирующего пользователя
	DeviceID     int       // Инвентарный номер устройства
	StartDate    time.Time // Начало интервала
	EndDate      time.Time // Конец интервала, строго позже начала
	CreationDate time.Time // Дата создания записи
	LastUpdate   time.Time // Дата последнего обновления
}

// DummyReservation используется для приёма данных резервирования из JSON-запроса.
type DummyReservation struct {
	UserID    string `json:"user_id" validate:"required,email"`        // Резервирующий пользователь
	DeviceID  int    `json:"device_id" validate:"required,gte=1,lte=20"` // Инвентарный номер
	StartDate string `json:"start_date" validate:"required"`           // RFC3339
	EndDate   string `json:"end_date" validate:"required"`             // RFC3339
}

// ToMap возвращает представление резервирования в виде отображения
// "имя поля -> примитивное значение". Даты сериализуются строками RFC3339 (UTC).
func (r Reservation) ToMap() map[string]any {
	return map[string]any{
		"id":            r.ID,
		"user_id":       r.UserID,
		"device_id":     r.DeviceID,
		"start_date":    wireTime(r.StartDate),
		"end_date":      wireTime(r.EndDate),
		"creation_date": wireTime(r.CreationDate),
		"last_update":   wireTime(r.LastUpdate),
	}
}

// ReservationFromMap восстанавливает резервирование из представления ToMap.
func ReservationFromMap(data map[string]any) Reservation {
	return Reservation{
		ID:           stringFromWire(data["id"]),
		UserID:       stringFromWire(data["user_id"]),
		DeviceID:     intFromWire(data["device_id"]),
		StartDate:    timeFromWire(data["start_date"]),
		EndDate:      timeFromWire(data["end_date"]),
		CreationDate: timeFromWire(data["creation_date"]),
		LastUpdate:   timeFromWire(data["last_update"]),
	}
}
