package models

import "time"

// Категории парковочных разрешений.
const (
	// CategorySemester — семестровое разрешение, действует 4 месяца.
	CategorySemester = "semester"
	// CategoryAnnual — годовое разрешение, действует 1 год.
	CategoryAnnual = "annual"
)

// Статусы разрешения. Статус не хранится в базе — он вычисляется
// при каждом чтении сравнением даты истечения с текущим временем.
const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

// Permit представляет купленное парковочное разрешение.
// Запись неизменяема после создания; поле Status заполняется
// бизнес-логикой при чтении и никогда не персистится.
type Permit struct {
	ID           int       `json:"-"`            // Внутренний идентификатор строки
	PermitUID    string    `json:"permitId"`     // Публичный идентификатор вида PMT-XXXXXXXX
	UserUID      string    `json:"-"`            // Владелец
	VehicleID    int       `json:"-"`            // Ссылка на транспортное средство
	FullName     string    `json:"fullName"`     // Полное имя покупателя
	StudentID    string    `json:"studentId"`    // Студенческий номер
	VehicleMake  string    `json:"vehicleMake"`  // Марка транспортного средства
	LicensePlate string    `json:"licensePlate"` // Номерной знак (в верхнем регистре)
	Category     string    `json:"category"`     // semester или annual
	Price        float64   `json:"price"`        // Цена покупки
	PurchaseDate time.Time `json:"purchaseDate"` // Дата покупки
	ExpiryDate   time.Time `json:"expiryDate"`   // Дата истечения
	Status       string    `json:"status,omitempty"`
}

// DummyPurchase используется для приёма данных покупки разрешения из
// JSON-запроса. Платёжные поля write-once: сохраняются только последние
// 4 цифры номера карты, остальное никогда не персистится.
type DummyPurchase struct {
	FullName       string  `json:"fullName" validate:"required"`
	StudentID      string  `json:"studentId" validate:"required"`
	VehicleMake    string  `json:"vehicleMake" validate:"required"`
	LicensePlate   string  `json:"licensePlate" validate:"required"`
	Category       string  `json:"category" validate:"required,oneof=semester annual"`
	Price          float64 `json:"price" validate:"required,gt=0"`
	CardNumber     string  `json:"cardNumber" validate:"required"`
	ExpiryDate     string  `json:"expiryDate" validate:"omitempty"`
	CVV            string  `json:"cvv" validate:"omitempty"`
	CardholderName string  `json:"cardholderName" validate:"omitempty"`
}

// PurchaseConfirmation — подтверждение успешной покупки. Содержит все
// данные для отображения квитанции без повторного чтения из базы.
type PurchaseConfirmation struct {
	PermitID      string    `json:"permitId"`
	TransactionID string    `json:"transactionId"`
	FullName      string    `json:"fullName"`
	StudentID     string    `json:"studentId"`
	VehicleMake   string    `json:"vehicleMake"`
	LicensePlate  string    `json:"licensePlate"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	ExpiryDate    time.Time `json:"expiryDate"`
}

// PermitInfo — данные об истекающем разрешении для напоминания по почте.
type PermitInfo struct {
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PermitUID    string    `json:"permitId"`
	LicensePlate string    `json:"licensePlate"`
	ExpiryDate   time.Time `json:"expiryDate"`
}
