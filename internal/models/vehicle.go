package models

import "time"

// Vehicle представляет транспортное средство, принадлежащее одному пользователю.
// Уникальность задается парой (user_uid, license_plate); номерной знак
// хранится в верхнем регистре. Наружу отдается только непрозрачный UID,
// внутренний числовой ID не покидает хранилище и бизнес-логику.
type Vehicle struct {
	ID             int       `json:"-"`              // Внутренний идентификатор строки
	UID            string    `json:"vehicleId"`      // Публичный непрозрачный идентификатор
	UserUID        string    `json:"-"`              // Владелец
	Make           string    `json:"make"`           // Марка
	Model          string    `json:"model"`          // Модель (опционально)
	Year           int       `json:"year"`           // Год выпуска (опционально)
	Color          string    `json:"color"`          // Цвет (опционально)
	LicensePlate   string    `json:"licensePlate"`   // Номерной знак (в верхнем регистре)
	RegisteredDate time.Time `json:"registeredDate"` // Дата регистрации в системе
}

// DummyVehicle используется для приёма данных регистрации транспортного
// средства из JSON-запроса. Обязательны только марка и номерной знак.
type DummyVehicle struct {
	Make         string `json:"make" validate:"required"`
	Model        string `json:"model" validate:"omitempty"`
	Year         int    `json:"year" validate:"omitempty,gte=1900"`
	Color        string `json:"color" validate:"omitempty"`
	LicensePlate string `json:"licensePlate" validate:"required"`
}
