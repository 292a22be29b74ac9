package domain

// Таксономия ошибок API. Хендлеры мапят тип ошибки на HTTP-статус,
// текст уходит клиенту как {"message": "..."} без внутренних деталей.

// ValidationError — некорректный или неполный ввод (HTTP 400).
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string { return e.msg }

// ConflictError — нарушение уникальности (HTTP 409).
type ConflictError struct {
	msg string
}

func NewConflictError(msg string) *ConflictError {
	return &ConflictError{msg: msg}
}

func (e *ConflictError) Error() string { return e.msg }

// AuthError — нет сессии или неверные креды (HTTP 401).
type AuthError struct {
	msg string
}

func NewAuthError(msg string) *AuthError {
	return &AuthError{msg: msg}
}

func (e *AuthError) Error() string { return e.msg }

// InternalError — сбой хранилища или файловой системы (HTTP 500),
// про который клиенту можно сказать чуть больше, чем generic-текст.
type InternalError struct {
	msg string
}

func NewInternalError(msg string) *InternalError {
	return &InternalError{msg: msg}
}

func (e *InternalError) Error() string { return e.msg }

// NotFoundError — сущность не найдена (HTTP 404).
type NotFoundError struct {
	msg string
}

func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{msg: msg}
}

func (e *NotFoundError) Error() string { return e.msg }
