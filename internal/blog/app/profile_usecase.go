package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
	"noteblog/internal/blog/ports/cache"
	"noteblog/internal/blog/ports/repositories"
	"noteblog/pkg/logger"
)

// ErrEmptyProfilePatch - в запросе изменения профиля нет ни одного поля.
const ErrEmptyProfilePatch = "at least one profile field is required"

// ProfileUseCase представляет собой бизнес-логику работы с профилями.
type ProfileUseCase struct {
	profileRepo repositories.ProfileRepository
	cache       cache.TagCache
	ttl         time.Duration
}

// NewProfileUseCase создает новый экземпляр ProfileUseCase.
func NewProfileUseCase(profileRepo repositories.ProfileRepository, tagCache cache.TagCache, ttl time.Duration) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo, cache: tagCache, ttl: ttl}
}

// GetProfile возвращает профиль по идентификатору.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, profileID string) (*entities.Profile, error) {
	profile, err := cached(ctx, uc.cache, "profiles:detail:"+profileID, uc.ttl,
		staticTags[*entities.Profile](TagProfiles, ProfileTag(profileID)),
		func() (*entities.Profile, error) { return uc.profileRepo.GetByID(ctx, profileID) })
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile изменяет профиль вызывающего. Смена email сбрасывает и кэш заметок,
// так как email входит в список лайкнувших.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, caller entities.Principal, patch entities.ProfilePatch) (*entities.Profile, error) {
	if patch.IsEmpty() {
		return nil, &domainerrors.ValidationError{Message: ErrEmptyProfilePatch}
	}

	if err := uc.profileRepo.Sync(ctx, caller); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSyncProfile, err)
	}

	trim(&patch.FullName)
	trim(&patch.Bio)
	trim(&patch.Website)
	trim(&patch.Location)

	profile, err := uc.profileRepo.Update(ctx, caller.UserID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	tags := []string{ProfileTag(caller.UserID)}
	if patch.Email != nil {
		tags = append(tags, TagNotes)
	}
	invalidate(ctx, uc.cache, tags...)

	logger.Log(ctx).Info(ctx, "profile updated",
		zap.String("method", "ProfileUseCase.UpdateProfile"), zap.String("profileID", caller.UserID))
	return profile, nil
}

// SyncProfile создает профиль вызывающего, если его еще нет, и обновляет email.
func (uc *ProfileUseCase) SyncProfile(ctx context.Context, caller entities.Principal) error {
	if err := uc.profileRepo.Sync(ctx, caller); err != nil {
		return fmt.Errorf("%s: %w", ErrSyncProfile, err)
	}
	return nil
}

func trim(s **string) {
	if *s == nil {
		return
	}
	v := strings.TrimSpace(**s)
	*s = &v
}
