// Package middlewarectx содержит HTTP middleware приложения и типизированные
// ключи контекста, через которые обработчики получают данные аутентифицированного
// пользователя.
package middlewarectx

// Key — типизированный ключ контекста запроса.
type Key string

// Ключи контекста, заполняемые JWTMiddleware.
const (
	// User — email аутентифицированного пользователя.
	User Key = "user"
	// UserUID — уникальный идентификатор пользователя.
	UserUID Key = "user_uid"
	// UserType — тип пользователя: student, faculty или visitor.
	UserType Key = "user_type"
)
