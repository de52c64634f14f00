// Package models содержит доменные структуры приложения: пользователей,
// транспортные средства, парковочные разрешения и платежи, а также
// вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    `json:"uid"`       // Уникальный идентификатор пользователя
	Email        string    `json:"email"`     // Электронная почта (уникальная, в домене университета)
	PasswordHash string    `json:"-"`         // Хэш пароля, наружу не отдается
	FirstName    string    `json:"firstName"` // Имя
	LastName     string    `json:"lastName"`  // Фамилия
	StudentID    string    `json:"studentId"` // Студенческий номер
	Phone        string    `json:"phone"`     // Телефон (опционально)
	UserType     string    `json:"userType"`  // Тип пользователя: student, faculty или visitor
	CreatedAt    time.Time `json:"createdAt"` // Дата регистрации
}

// DummyRegisterUser используется для приёма данных регистрации из JSON-запроса,
// прежде чем конвертировать их в User. Пароль проверяется отдельно парольной политикой.
type DummyRegisterUser struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	StudentID       string `json:"studentId" validate:"required"`
	Phone           string `json:"phone" validate:"omitempty"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	UserType        string `json:"userType" validate:"required,oneof=student faculty visitor"`
}

// DummyLogin используется для приёма данных авторизации из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DummyUpdateProfile используется для приёма данных обновления профиля.
type DummyUpdateProfile struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"omitempty"`
}

// DummyChangePassword используется для приёма данных смены пароля.
type DummyChangePassword struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}
