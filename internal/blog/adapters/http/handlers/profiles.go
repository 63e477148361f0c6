package handlers

import (
	"github.com/gofiber/fiber/v3"

	"noteblog/internal/blog/adapters/http/dto"
	"noteblog/internal/blog/ports/services"
)

// Константы сообщений для логирования.
const (
	LogHandlerGetProfile    = "handling get profile request"
	LogHandlerUpdateProfile = "handling update profile request"
)

// ProfilesHandler обработчик HTTP-запросов для профилей.
type ProfilesHandler struct {
	profiles services.ProfilesService
}

// NewProfilesHandler создает новый экземпляр обработчика профилей.
func NewProfilesHandler(profiles services.ProfilesService) *ProfilesHandler {
	return &ProfilesHandler{profiles: profiles}
}

// GetProfile возвращает публичный профиль.
func (h *ProfilesHandler) GetProfile(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "ProfilesHandler.GetProfile", LogHandlerGetProfile)

	profileID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid profile id", err)
	}

	profile, err := h.profiles.GetProfile(userCtx, profileID)
	if err != nil {
		return fail(ctx, log, "failed to get profile", err)
	}

	return send(ctx, fiber.StatusOK, dto.ProfileResponse{Profile: dto.NewProfile(profile), Message: MsgProfileFetched})
}

// UpdateProfile изменяет профиль вызывающего.
func (h *ProfilesHandler) UpdateProfile(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "ProfilesHandler.UpdateProfile", LogHandlerUpdateProfile)

	principal, err := caller(ctx)
	if err != nil {
		return fail(ctx, log, "unauthenticated", err)
	}

	var req dto.UpdateProfileRequest
	if err := dto.BindBody(ctx, &req); err != nil {
		return fail(ctx, log, "invalid update profile request", err)
	}

	profile, err := h.profiles.UpdateProfile(userCtx, principal, req.Patch())
	if err != nil {
		return fail(ctx, log, "failed to update profile", err)
	}

	return send(ctx, fiber.StatusOK, dto.ProfileResponse{Profile: dto.NewProfile(profile), Message: MsgProfileUpdated})
}
