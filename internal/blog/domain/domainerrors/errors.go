// Package domainerrors содержит типизированные ошибки доменного слоя.
// Перевод в HTTP ответы выполняется только на границе HTTP адаптера.
package domainerrors

import (
	"errors"
	"fmt"
)

// Сигнальные ошибки доступа и ограничения частоты.
var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("access denied")
	ErrRateLimited  = errors.New("too many requests")
)

// NotFoundError - запрошенная сущность не существует.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// DatabaseError - непредвиденная ошибка хранилища с именем операции.
type DatabaseError struct {
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error in %s: %v", e.Operation, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// FieldError - ошибка одного поля запроса.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError - входные данные не прошли проверку.
type ValidationError struct {
	Field   string
	Message string
	Details []FieldError
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewNotFound создает NotFoundError.
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewDatabase оборачивает ошибку хранилища. Типизированные доменные ошибки проходят без изменений.
func NewDatabase(operation string, err error) error {
	if err == nil {
		return nil
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return err
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return err
	}
	var de *DatabaseError
	if errors.As(err, &de) {
		return err
	}
	return &DatabaseError{Operation: operation, Err: err}
}

// NewValidation создает ValidationError для одного поля.
func NewValidation(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: []FieldError{{Field: field, Message: message}},
	}
}

// IsNotFound сообщает, является ли err (или причина) NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
