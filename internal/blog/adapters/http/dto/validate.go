package dto

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"noteblog/internal/blog/domain/domainerrors"
)

// MsgValidationFailed - общее сообщение ошибки валидации.
const MsgValidationFailed = "Validation failed"

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
			return isWebURL(fl.Field().String())
		})
	})
	return validate
}

// isWebURL принимает пустую строку или абсолютный http(s) адрес.
func isWebURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate проверяет структуру запроса и возвращает *domainerrors.ValidationError
// с ошибками всех полей.
func Validate(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	out := &domainerrors.ValidationError{Message: MsgValidationFailed}
	for _, fe := range verrs {
		field := fieldPath(fe)
		out.Details = append(out.Details, domainerrors.FieldError{Field: field, Message: message(fe)})
	}
	if len(out.Details) == 1 {
		out.Field = out.Details[0].Field
	}
	return out
}

// fieldPath убирает имя корневой структуры из пространства имен: "createNoteRequest.tags[0]" -> "tags[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		switch fe.Kind() {
		case reflect.Slice:
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		case reflect.Int, reflect.Int64:
			return "must be at least " + fe.Param()
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		switch fe.Kind() {
		case reflect.Slice:
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		case reflect.Int, reflect.Int64:
			return "must be at most " + fe.Param()
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "weburl":
		return "must be a valid http(s) URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
