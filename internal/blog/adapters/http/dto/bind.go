package dto

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
)

// Сообщения ошибок разбора запроса.
const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidUUID        = "must be a valid UUID"
	ErrMsgNotInteger         = "must be an integer"
)

type normalizer interface {
	Normalize()
}

// BindBody разбирает JSON тело, нормализует и валидирует его.
func BindBody(ctx fiber.Ctx, req any) error {
	if err := ctx.Bind().Body(req); err != nil {
		return domainerrors.NewValidation("body", ErrMsgInvalidRequestBody)
	}
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}
	return Validate(req)
}

// ParseID возвращает параметр пути name, если это UUID.
func ParseID(ctx fiber.Ctx, name string) (string, error) {
	raw := ctx.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", domainerrors.NewValidation(name, ErrMsgInvalidUUID)
	}
	return id.String(), nil
}

// ParseOptionalUUID возвращает query параметр name, если он задан и является UUID.
func ParseOptionalUUID(ctx fiber.Ctx, name string) (string, error) {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return "", nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", domainerrors.NewValidation(name, ErrMsgInvalidUUID)
	}
	return id.String(), nil
}

// QueryInt возвращает целый query параметр или def, если он не задан.
func QueryInt(ctx fiber.Ctx, name string, def int) (int, error) {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerrors.NewValidation(name, ErrMsgNotInteger)
	}
	return v, nil
}

// ParseListQuery разбирает и валидирует page, limit, search, userId и tag.
func ParseListQuery(ctx fiber.Ctx) (ListQuery, error) {
	var q ListQuery
	var err error

	if q.Page, err = QueryInt(ctx, "page", entities.DefaultPage); err != nil {
		return q, err
	}
	if q.Limit, err = QueryInt(ctx, "limit", entities.DefaultLimit); err != nil {
		return q, err
	}
	q.Search = strings.TrimSpace(ctx.Query("search"))
	q.UserID = strings.TrimSpace(ctx.Query("userId"))
	q.Tag = strings.TrimSpace(ctx.Query("tag"))

	if err := Validate(&q); err != nil {
		return q, err
	}
	return q, nil
}

// PageRequest возвращает запрошенную страницу.
func (q ListQuery) PageRequest() entities.PageRequest {
	return entities.PageRequest{Page: q.Page, Limit: q.Limit}
}

// SplitTags разбирает список тегов через запятую.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
