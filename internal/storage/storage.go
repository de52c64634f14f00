// Package storage реализует хранилище данных на основе PostgreSQL
// для управления пользователями, транспортными средствами, парковочными
// разрешениями и платежами. Ключевая операция — атомарная покупка
// разрешения: upsert транспортного средства, вставка разрешения и платежа
// выполняются в одной транзакции.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound возвращается, когда запрошенная строка не существует
// или не принадлежит вызывающему пользователю. Чужие строки намеренно
// неотличимы от несуществующих.
var ErrNotFound = errors.New("not found")

// Storage инкапсулирует пул соединений с базой данных PostgreSQL
// и реализует методы работы с доменными сущностями.
type Storage struct {
	DB *sql.DB
}

// New создаёт пул подключений к PostgreSQL и проверяет доступность базы.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'permits'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table permits missing or query error: %w", err)
	}
	return nil
}

// IsUniqueViolation сообщает, вызвана ли ошибка нарушением уникального
// ограничения. Используется для перегенерации идентификаторов и для
// различения конфликтов (занятый email, повторный номерной знак).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
