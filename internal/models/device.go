package models

import "time"

// MaxInventoryID ограничивает пул инвентарных номеров: допустимы номера 1..20.
const MaxInventoryID = 20

// Device представляет устройство с фиксированным инвентарным номером.
// EndOfLife может быть nil — устройство без даты списания.
type Device struct {
	ID                int        // Инвентарный номер, 1..MaxInventoryID
	Name              string     // Название устройства
	ResponsibleUserID string     // Электронная почта ответственного пользователя
	IsActive          bool       // Доступно ли устройство для резервирования
	EndOfLife         *time.Time // Дата списания, после неё резервирование запрещено
	CreationDate      time.Time  // Дата создания записи
	LastUpdate        time.Time  // Дата последнего обновления
}

// DummyDevice используется для приёма данных устройства из JSON-запроса.
// Даты приходят строками RFC3339, чтобы их можно было валидировать и парсить вручную.
type DummyDevice struct {
	ID                int    `json:"id" validate:"required,gte=1,lte=20"`           // Инвентарный номер
	Name              string `json:"name" validate:"required"`                      // Название устройства
	ResponsibleUserID string `json:"responsible_user_id" validate:"required,email"` // Ответственный пользователь
	IsActive          *bool  `json:"is_active"`                                     // По умолчанию true
	EndOfLife         string `json:"end_of_life" validate:"omitempty"`              // RFC3339, опционально
}

// ToMap возвращает представление устройства в виде отображения
// "имя поля -> примитивное значение". Отсутствующая дата списания передаётся как nil.
func (d Device) ToMap() map[string]any {
	var eol any
	if d.EndOfLife != nil {
		eol = wireTime(*d.EndOfLife)
	}
	return map[string]any{
		"id":                  d.ID,
		"name":                d.Name,
		"responsible_user_id": d.ResponsibleUserID,
		"is_active":           d.IsActive,
		"end_of_life":         eol,
		"creation_date":       wireTime(d.CreationDate),
		"last_update":         wireTime(d.LastUpdate),
	}
}

// DeviceFromMap восстанавливает устройство из представления ToMap.
// Отсутствующий is_active трактуется как true, отсутствующий end_of_life — как nil,
// отсутствующие даты заменяются текущим временем (защитный fallback).
func DeviceFromMap(data map[string]any) Device {
	active := true
	if v, ok := data["is_active"].(bool); ok {
		active = v
	}
	return Device{
		ID:                intFromWire(data["id"]),
		Name:              stringFromWire(data["name"]),
		ResponsibleUserID: stringFromWire(data["responsible_user_id"]),
		IsActive:          active,
		EndOfLife:         optionalTimeFromWire(data["end_of_life"]),
		CreationDate:      timeFromWire(data["creation_date"]),
		LastUpdate:        timeFromWire(data["last_update"]),
	}
}
