package domain

import (
	"errors"
	"fmt"
)

// Сентинельные ошибки домена, используемые сервисами, клиентом GitHub и веб-слоем.
var (
	ErrAuthRequired = errors.New("AUTH_REQUIRED")
	ErrBadRequest   = errors.New("BAD_REQUEST")
	ErrAuthFailed   = errors.New("AUTH_FAILED")
	ErrNotFound     = errors.New("NOT_FOUND")
	ErrUpstream     = errors.New("UPSTREAM_ERROR")
)

// UpstreamError описывает сбой GitHub API, отличный от "не найдено".
// StatusCode хранит HTTP-статус удалённого ответа (0 — транспортная ошибка без ответа).
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: github responded with status %d: %v", ErrUpstream, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: github responded with status %d", ErrUpstream, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// NewAuthRequiredError сигнализирует, что ни сессионный, ни статический токен недоступны.
func NewAuthRequiredError() error {
	return fmt.Errorf("%w: no usable access token, visit /auth", ErrAuthRequired)
}

// NewBadRequestError возвращает ошибку о некорректных входных параметрах запроса.
func NewBadRequestError(reason string) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, reason)
}

// NewAuthFailedError сообщает, что обмен кода авторизации на токен был отклонён.
func NewAuthFailedError(reason string) error {
	return fmt.Errorf("%w: %s", ErrAuthFailed, reason)
}

// NewNotFoundError возвращает ошибку отсутствия запрошенного ресурса.
func NewNotFoundError(resource string) error {
	return fmt.Errorf("%w: %s not found", ErrNotFound, resource)
}
