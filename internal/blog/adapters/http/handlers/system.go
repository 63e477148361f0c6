package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteblog/internal/blog/adapters/http/dto"
	"noteblog/internal/blog/ports/services"
)

// Константы сообщений для логирования.
const (
	LogHandlerHealth       = "handling health request"
	LogHandlerClientConfig = "handling client config request"
	LogHandlerRevalidate   = "handling revalidate request"
	LogDependencyDown      = "health check dependency unavailable"
)

// Состояния проверки здоровья.
const (
	StatusOK          = "ok"
	StatusDegraded    = "degraded"
	StatusError       = "error"
	StatusUp          = "up"
	StatusDown        = "down"
	StatusDisabled    = "disabled"
	healthPingTimeout = 2 * time.Second
)

// SystemHandler обслуживает служебные маршруты.
type SystemHandler struct {
	notes        services.NotesService
	database     services.HealthChecker
	cache        services.HealthChecker
	clientConfig dto.ClientConfigResponse
}

// NewSystemHandler создает обработчик служебных маршрутов. cache может быть nil,
// если кэш выключен.
func NewSystemHandler(notes services.NotesService, database, cache services.HealthChecker, clientConfig dto.ClientConfigResponse) *SystemHandler {
	return &SystemHandler{
		notes:        notes,
		database:     database,
		cache:        cache,
		clientConfig: clientConfig,
	}
}

// Health сообщает о доступности базы данных и кэша. Недоступная база дает 503.
func (h *SystemHandler) Health(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "SystemHandler.Health", LogHandlerHealth)

	resp := dto.HealthResponse{Status: StatusOK, Database: StatusUp, Cache: StatusDisabled}
	status := fiber.StatusOK

	if err := ping(userCtx, h.database); err != nil {
		log.Warn(userCtx, LogDependencyDown, zap.String("dependency", "database"), zap.Error(err))
		resp.Database = StatusDown
		resp.Status = StatusError
		status = fiber.StatusServiceUnavailable
	}

	if h.cache != nil {
		resp.Cache = StatusUp
		if err := ping(userCtx, h.cache); err != nil {
			log.Warn(userCtx, LogDependencyDown, zap.String("dependency", "cache"), zap.Error(err))
			resp.Cache = StatusDown
			if resp.Status == StatusOK {
				resp.Status = StatusDegraded
			}
		}
	}

	return send(ctx, status, resp)
}

// ClientConfig возвращает публичные настройки клиента.
func (h *SystemHandler) ClientConfig(ctx fiber.Ctx) error {
	begin(ctx, "SystemHandler.ClientConfig", LogHandlerClientConfig)
	return send(ctx, fiber.StatusOK, h.clientConfig)
}

// Revalidate сбрасывает переданные теги кэша (по умолчанию "notes").
func (h *SystemHandler) Revalidate(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "SystemHandler.Revalidate", LogHandlerRevalidate)

	var req dto.RevalidateRequest
	if len(ctx.Body()) > 0 {
		if err := dto.BindBody(ctx, &req); err != nil {
			return fail(ctx, log, "invalid revalidate request", err)
		}
	}

	tags, err := h.notes.Revalidate(userCtx, req.Tags)
	if err != nil {
		return fail(ctx, log, "failed to revalidate cache", err)
	}

	return send(ctx, fiber.StatusOK, dto.RevalidateResponse{Revalidated: tags})
}

func ping(ctx context.Context, checker services.HealthChecker) error {
	pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return checker.Ping(pingCtx)
}
