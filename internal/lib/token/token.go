// Package token реализует генерацию непрозрачных публичных идентификаторов
// с человекочитаемым префиксом, например PMT-4F7K2Q9A или TXN-8B3N6Z1C4D7E.
//
// Идентификаторы генерируются криптографически стойким источником случайности.
// Генератор не гарантирует глобальную уникальность сам по себе — она
// обеспечивается уникальным ограничением на уровне базы данных.
package token

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	// PermitPrefix — префикс публичного идентификатора разрешения на парковку.
	PermitPrefix = "PMT-"
	// TransactionPrefix — префикс идентификатора платёжной транзакции.
	TransactionPrefix = "TXN-"

	// PermitTokenLength — длина случайной части идентификатора разрешения.
	PermitTokenLength = 8
	// TransactionTokenLength — длина случайной части идентификатора транзакции.
	TransactionTokenLength = 12
)

// New возвращает строку вида prefix + length случайных символов [A-Z0-9].
func New(prefix string, length int) (string, error) {
	const op = "token.New"
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return prefix + string(buf), nil
}

// NewPermitID генерирует публичный идентификатор разрешения (PMT-XXXXXXXX).
func NewPermitID() (string, error) {
	return New(PermitPrefix, PermitTokenLength)
}

// NewTransactionID генерирует идентификатор транзакции (TXN-XXXXXXXXXXXX).
func NewTransactionID() (string, error) {
	return New(TransactionPrefix, TransactionTokenLength)
}
