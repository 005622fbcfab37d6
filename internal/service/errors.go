package service

import "errors"

// Ошибки уровня сервиса. Handlers мапят их на HTTP статусы:
// ValidationError -> 400, ConflictError -> 409, ErrNotFound -> 404,
// ErrInvalidCredentials -> 401.
var (
	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials неверный пароль при логине
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError описывает отклоненный входной параметр.
// Message безопасно показывать пользователю.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// invalidInput возвращает ValidationError с заданным сообщением
func invalidInput(message string) error {
	return &ValidationError{Message: message}
}

// ConflictError описывает нарушение уникальности email или username
type ConflictError struct {
	Field   string // "email" или "username"
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func emailConflict() error {
	return &ConflictError{Field: "email", Message: "email already registered"}
}

func usernameConflict() error {
	return &ConflictError{Field: "username", Message: "username already registered"}
}
