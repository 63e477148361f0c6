package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
	"noteblog/internal/blog/ports/repositories"
	"noteblog/pkg/logger"
)

const profileColumns = `id, email, full_name, avatar_url, bio, website, location, created_at, updated_at`

// ProfileRepository реализует интерфейс repositories.ProfileRepository.
type ProfileRepository struct {
	pool PgxPoolInterface
}

// NewProfileRepository создает новый репозиторий профилей.
func NewProfileRepository(pool PgxPoolInterface) repositories.ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func scanProfile(row pgx.Row) (*entities.Profile, error) {
	var p entities.Profile
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.FullName,
		&p.AvatarURL,
		&p.Bio,
		&p.Website,
		&p.Location,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID находит профиль по ID.
func (r *ProfileRepository) GetByID(ctx context.Context, profileID string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "GetByID"))

	profile, err := scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "profile not found", zap.String("id", profileID))
			return nil, domainerrors.NewNotFound("profile", profileID)
		}
		log.Error(ctx, "error finding profile by id", zap.Error(err))
		return nil, domainerrors.NewDatabase("ProfileRepository.GetByID", err)
	}
	return profile, nil
}

// Update меняет переданные поля профиля.
func (r *ProfileRepository) Update(ctx context.Context, profileID string, patch entities.ProfilePatch) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "Update"))

	query := `
        UPDATE profiles
        SET email = COALESCE($2, email),
            full_name = COALESCE($3, full_name),
            avatar_url = COALESCE($4, avatar_url),
            bio = COALESCE($5, bio),
            website = COALESCE($6, website),
            location = COALESCE($7, location),
            updated_at = GREATEST(NOW(), created_at)
        WHERE id = $1
        RETURNING ` + profileColumns

	profile, err := scanProfile(r.pool.QueryRow(ctx, query,
		profileID,
		patch.Email,
		patch.FullName,
		patch.AvatarURL,
		patch.Bio,
		patch.Website,
		patch.Location,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "profile not found for update", zap.String("id", profileID))
			return nil, domainerrors.NewNotFound("profile", profileID)
		}
		log.Error(ctx, "error updating profile", zap.Error(err))
		return nil, domainerrors.NewDatabase("ProfileRepository.Update", err)
	}
	return profile, nil
}

// Sync создает профиль аутентифицированного пользователя или обновляет его email.
func (r *ProfileRepository) Sync(ctx context.Context, principal entities.Principal) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles (id, email) VALUES ($1, NULLIF($2, ''))
         ON CONFLICT (id) DO UPDATE SET email = COALESCE(EXCLUDED.email, profiles.email)`,
		principal.UserID, principal.Email)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error syncing profile",
			zap.String("repository", "profile"), zap.String("method", "Sync"), zap.Error(err))
		return domainerrors.NewDatabase("ProfileRepository.Sync", err)
	}
	return nil
}
