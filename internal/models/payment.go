package models

import "time"

// Payment представляет платёж, созданный вместе с разрешением в одной
// транзакции. Связь с разрешением один-к-одному. От номера карты
// сохраняются только последние 4 цифры.
type Payment struct {
	ID             int       `json:"-"`             // Внутренний идентификатор строки
	TransactionUID string    `json:"transactionId"` // Идентификатор вида TXN-XXXXXXXXXXXX
	UserUID        string    `json:"-"`             // Плательщик
	PermitID       int       `json:"-"`             // Ссылка на разрешение
	Amount         float64   `json:"amount"`        // Сумма платежа
	CardLast4      string    `json:"cardLast4"`     // Последние 4 цифры карты
	PaymentDate    time.Time `json:"paymentDate"`   // Дата платежа
	Status         string    `json:"status"`        // Всегда completed в текущем потоке
}
