// Package apierror переводит ошибки доменного слоя в JSON ответы HTTP API.
package apierror

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteblog/internal/blog/adapters/http/requestctx"
	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/ports/services"
	"noteblog/pkg/logger"
)

// Машиночитаемые коды ошибок.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeRateLimit    = "RATE_LIMIT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnknown      = "UNKNOWN_ERROR"
)

// Сообщения, которые не раскрывают внутренние детали.
const (
	MsgValidationFailed = "Validation failed"
	MsgUnauthorized     = "Authentication required"
	MsgTokenExpired     = "Token has expired"
	MsgForbidden        = "You do not have permission to perform this action"
	MsgRateLimited      = "Too many requests, please try again later"
	MsgInternal         = "Internal server error"
	MsgUnknown          = "An unexpected error occurred"

	LogRequestFailed = "request failed"
)

// FieldDetail - ошибка одного поля в ответе.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Body - конверт ошибки в ответе.
type Body struct {
	Error     string        `json:"error"`
	Code      string        `json:"code"`
	Field     string        `json:"field,omitempty"`
	Details   []FieldDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// APIError - ошибка уровня HTTP: статус, код и необязательное поле.
type APIError struct {
	Status  int
	Code    string
	Message string
	Field   string
	Details []FieldDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// New создает APIError.
func New(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// Validation создает ошибку валидации одного поля.
func Validation(field, message string) *APIError {
	return &APIError{
		Status:  fiber.StatusBadRequest,
		Code:    CodeValidation,
		Message: message,
		Field:   field,
		Details: []FieldDetail{{Field: field, Message: message}},
	}
}

// From переводит произвольную ошибку в APIError.
func From(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var ve *domainerrors.ValidationError
	if errors.As(err, &ve) {
		out := &APIError{
			Status:  fiber.StatusBadRequest,
			Code:    CodeValidation,
			Message: MsgValidationFailed,
			Field:   ve.Field,
		}
		if ve.Field == "" && ve.Message != "" {
			out.Message = ve.Message
		}
		for _, d := range ve.Details {
			out.Details = append(out.Details, FieldDetail{Field: d.Field, Message: d.Message})
		}
		return out
	}

	var nf *domainerrors.NotFoundError
	if errors.As(err, &nf) {
		return New(fiber.StatusNotFound, CodeNotFound, nf.Error())
	}

	switch {
	case errors.Is(err, services.ErrExpiredJWTToken):
		return New(fiber.StatusUnauthorized, CodeUnauthorized, MsgTokenExpired)
	case errors.Is(err, domainerrors.ErrUnauthorized), errors.Is(err, services.ErrInvalidJWTToken):
		return New(fiber.StatusUnauthorized, CodeUnauthorized, MsgUnauthorized)
	case errors.Is(err, domainerrors.ErrForbidden):
		return New(fiber.StatusForbidden, CodeForbidden, MsgForbidden)
	case errors.Is(err, domainerrors.ErrRateLimited):
		return New(fiber.StatusTooManyRequests, CodeRateLimit, MsgRateLimited)
	}

	var de *domainerrors.DatabaseError
	if errors.As(err, &de) {
		return New(fiber.StatusInternalServerError, CodeInternal, MsgInternal)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fromFiber(fe)
	}

	return New(fiber.StatusInternalServerError, CodeUnknown, MsgUnknown)
}

func fromFiber(fe *fiber.Error) *APIError {
	switch {
	case fe.Code == fiber.StatusNotFound:
		return New(fe.Code, CodeNotFound, fe.Message)
	case fe.Code == fiber.StatusUnauthorized:
		return New(fe.Code, CodeUnauthorized, fe.Message)
	case fe.Code == fiber.StatusForbidden:
		return New(fe.Code, CodeForbidden, fe.Message)
	case fe.Code == fiber.StatusTooManyRequests:
		return New(fe.Code, CodeRateLimit, fe.Message)
	case fe.Code >= fiber.StatusInternalServerError:
		return New(fe.Code, CodeInternal, MsgInternal)
	default:
		return New(fe.Code, CodeValidation, fe.Message)
	}
}

// Write отправляет конверт ошибки. Ошибки 5xx логируются с исходной причиной.
func Write(ctx fiber.Ctx, err error) error {
	apiErr := From(err)

	if apiErr.Status >= fiber.StatusInternalServerError {
		requestCtx := requestctx.From(ctx)
		logger.Log(requestCtx).Error(requestCtx, LogRequestFailed,
			zap.String("path", ctx.Path()), zap.Int("status", apiErr.Status), zap.Error(err))
	}

	if sendErr := ctx.Status(apiErr.Status).JSON(Body{
		Error:     apiErr.Message,
		Code:      apiErr.Code,
		Field:     apiErr.Field,
		Details:   apiErr.Details,
		Timestamp: time.Now().UTC(),
	}); sendErr != nil {
		return fmt.Errorf("error sending error response: %w", sendErr)
	}
	return nil
}

// ErrorHandler - обработчик ошибок fiber для всего приложения.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	return Write(ctx, err)
}
