// Package models содержит доменные структуры сервиса резервирования устройств:
// пользователей, устройства и резервирования, а также вспомогательные
// DTO-типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет ответственное лицо в системе учёта устройств.
// Идентификатором служит адрес электронной почты.
type User struct {
	ID           string    // Электронная почта, первичный ключ
	Name         string    // Имя пользователя
	CreationDate time.Time // Дата создания записи, выставляется сервером
	LastUpdate   time.Time // Дата последнего обновления, выставляется сервером
}

// DummyUser используется для приёма данных пользователя из JSON-запроса.
type DummyUser struct {
	ID   string `json:"id" validate:"required,email"` // Электронная почта
	Name string `json:"name" validate:"required"`     // Имя пользователя
}

// ToMap возвращает представление пользователя в виде отображения
// "имя поля -> примитивное значение". Даты сериализуются строками RFC3339 (UTC).
func (u User) ToMap() map[string]any {
	return map[string]any{
		"id":            u.ID,
		"name":          u.Name,
		"creation_date": wireTime(u.CreationDate),
		"last_update":   wireTime(u.LastUpdate),
	}
}

// UserFromMap восстанавливает пользователя из представления ToMap.
// Отсутствующие или нечитаемые даты заменяются текущим временем —
// защитный fallback для старых записей, не штатный путь.
func UserFromMap(data map[string]any) User {
	return User{
		ID:           stringFromWire(data["id"]),
		Name:         stringFromWire(data["name"]),
		CreationDate: timeFromWire(data["creation_date"]),
		LastUpdate:   timeFromWire(data["last_update"]),
	}
}
