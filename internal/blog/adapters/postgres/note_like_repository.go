package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
	"noteblog/internal/blog/ports/repositories"
	"noteblog/pkg/logger"
)

// NoteLikeRepository реализует интерфейс repositories.NoteLikeRepository.
type NoteLikeRepository struct {
	pool PgxPoolInterface
}

// NewNoteLikeRepository создает новый репозиторий лайков.
func NewNoteLikeRepository(pool PgxPoolInterface) repositories.NoteLikeRepository {
	return &NoteLikeRepository{pool: pool}
}

// likeTable описывает таблицу лайков: заметок или записей блога.
type likeTable struct {
	operation   string
	resource    string
	targetTable string
	likesTable  string
	targetCol   string
}

var noteLikes = likeTable{
	operation:   "NoteLikeRepository.Toggle",
	resource:    "note",
	targetTable: "notes",
	likesTable:  "note_likes",
	targetCol:   "note_id",
}

// toggleLike снимает лайк, если он есть, иначе ставит его, и считает лайки цели.
// Все шаги выполняются в одной транзакции; UNIQUE(target, user) исключает дубликаты.
func toggleLike(ctx context.Context, pool PgxPoolInterface, lt likeTable, targetID, userID string) (*entities.LikeState, error) {
	state := &entities.LikeState{TargetID: targetID, UserID: userID}

	err := inTx(ctx, pool, lt.operation, func(tx pgx.Tx) error {
		var one int
		err := tx.QueryRow(ctx,
			fmt.Sprintf(`SELECT 1 FROM %s WHERE id = $1 FOR SHARE`, lt.targetTable), targetID,
		).Scan(&one)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainerrors.NewNotFound(lt.resource, targetID)
			}
			return domainerrors.NewDatabase(lt.operation, err)
		}

		removed, err := tx.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND user_id = $2`, lt.likesTable, lt.targetCol),
			targetID, userID)
		if err != nil {
			return domainerrors.NewDatabase(lt.operation, err)
		}

		if removed.RowsAffected() == 0 {
			_, err = tx.Exec(ctx,
				fmt.Sprintf(`INSERT INTO %s (%s, user_id) VALUES ($1, $2) ON CONFLICT (%s, user_id) DO NOTHING`,
					lt.likesTable, lt.targetCol, lt.targetCol),
				targetID, userID)
			if err != nil {
				if isForeignKeyViolation(err) {
					return domainerrors.NewNotFound("profile", userID)
				}
				return domainerrors.NewDatabase(lt.operation, err)
			}
			state.IsLiked = true
		}

		err = tx.QueryRow(ctx,
			fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, lt.likesTable, lt.targetCol), targetID,
		).Scan(&state.LikeCount)
		if err != nil {
			return domainerrors.NewDatabase(lt.operation, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Toggle переключает лайк пользователя на заметке.
func (r *NoteLikeRepository) Toggle(ctx context.Context, noteID, userID string) (*entities.LikeState, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteLikeRepository.Toggle"))
	log.Debug(ctx, "toggling like", zap.String("noteID", noteID), zap.String("userID", userID))

	state, err := toggleLike(ctx, r.pool, noteLikes, noteID, userID)
	if err != nil {
		if !domainerrors.IsNotFound(err) {
			log.Error(ctx, "failed to toggle like", zap.Error(err))
		}
		return nil, err
	}

	log.Debug(ctx, "like toggled", zap.Bool("isLiked", state.IsLiked), zap.Int("likeCount", state.LikeCount))
	return state, nil
}

// Add ставит лайк. Повторный лайк ничего не меняет.
func (r *NoteLikeRepository) Add(ctx context.Context, noteID, userID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO note_likes (note_id, user_id) VALUES ($1, $2) ON CONFLICT (note_id, user_id) DO NOTHING`,
		noteID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domainerrors.NewNotFound("note", noteID)
		}
		logger.Log(ctx).Error(ctx, "failed to add like",
			zap.String("method", "NoteLikeRepository.Add"), zap.Error(err))
		return domainerrors.NewDatabase("NoteLikeRepository.Add", err)
	}
	return nil
}

// Remove снимает лайк. Отсутствующий лайк - NotFound.
func (r *NoteLikeRepository) Remove(ctx context.Context, noteID, userID string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM note_likes WHERE note_id = $1 AND user_id = $2`, noteID, userID)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to remove like",
			zap.String("method", "NoteLikeRepository.Remove"), zap.Error(err))
		return domainerrors.NewDatabase("NoteLikeRepository.Remove", err)
	}
	if result.RowsAffected() == 0 {
		return domainerrors.NewNotFound("like", noteID)
	}
	return nil
}

// IsLiked проверяет, лайкнул ли пользователь заметку.
func (r *NoteLikeRepository) IsLiked(ctx context.Context, noteID, userID string) (bool, error) {
	var liked bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM note_likes WHERE note_id = $1 AND user_id = $2)`,
		noteID, userID,
	).Scan(&liked)
	if err != nil {
		return false, domainerrors.NewDatabase("NoteLikeRepository.IsLiked", err)
	}
	return liked, nil
}

// Count возвращает число лайков заметки.
func (r *NoteLikeRepository) Count(ctx context.Context, noteID string) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM note_likes WHERE note_id = $1`, noteID).Scan(&count); err != nil {
		return 0, domainerrors.NewDatabase("NoteLikeRepository.Count", err)
	}
	return count, nil
}

// LikedNoteIDs возвращает заметки, лайкнутые пользователем, начиная с последних.
func (r *NoteLikeRepository) LikedNoteIDs(ctx context.Context, userID string) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteLikeRepository.LikedNoteIDs"))

	rows, err := r.pool.Query(ctx,
		`SELECT note_id FROM note_likes WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		log.Error(ctx, "failed to list liked notes", zap.Error(err))
		return nil, domainerrors.NewDatabase("NoteLikeRepository.LikedNoteIDs", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, domainerrors.NewDatabase("NoteLikeRepository.LikedNoteIDs", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domainerrors.NewDatabase("NoteLikeRepository.LikedNoteIDs", err)
	}
	return ids, nil
}
