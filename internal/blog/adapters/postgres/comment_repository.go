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

const commentColumns = `id, content, note_id, author_id, parent_id, created_at, updated_at`

// CommentRepository реализует интерфейс repositories.CommentRepository.
type CommentRepository struct {
	pool PgxPoolInterface
}

// NewCommentRepository создает новый репозиторий комментариев.
func NewCommentRepository(pool PgxPoolInterface) repositories.CommentRepository {
	return &CommentRepository{pool: pool}
}

func scanComment(row pgx.Row) (*entities.Comment, error) {
	var c entities.Comment
	if err := row.Scan(&c.ID, &c.Content, &c.NoteID, &c.AuthorID, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByNote возвращает комментарии заметки в порядке создания.
func (r *CommentRepository) ListByNote(ctx context.Context, noteID string) ([]*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("method", "CommentRepository.ListByNote"))

	rows, err := r.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE note_id = $1 ORDER BY created_at, id`, noteID)
	if err != nil {
		log.Error(ctx, "failed to list comments", zap.Error(err))
		return nil, domainerrors.NewDatabase("CommentRepository.ListByNote", err)
	}
	defer rows.Close()

	comments := make([]*entities.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, domainerrors.NewDatabase("CommentRepository.ListByNote", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domainerrors.NewDatabase("CommentRepository.ListByNote", err)
	}
	return comments, nil
}

// GetByID находит комментарий по ID.
func (r *CommentRepository) GetByID(ctx context.Context, commentID string) (*entities.Comment, error) {
	c, err := scanComment(r.pool.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.NewNotFound("comment", commentID)
		}
		return nil, domainerrors.NewDatabase("CommentRepository.GetByID", err)
	}
	return c, nil
}

// Create сохраняет комментарий. Родитель должен принадлежать той же заметке.
func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("method", "CommentRepository.Create"))

	if comment.ParentID != nil {
		var parentNoteID string
		err := r.pool.QueryRow(ctx, `SELECT note_id FROM comments WHERE id = $1`, *comment.ParentID).Scan(&parentNoteID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domainerrors.NewNotFound("comment", *comment.ParentID)
			}
			return nil, domainerrors.NewDatabase("CommentRepository.Create", err)
		}
		if parentNoteID != comment.NoteID {
			return nil, domainerrors.NewValidation("parentId", "parent comment belongs to another note")
		}
	}

	created, err := scanComment(r.pool.QueryRow(ctx,
		`INSERT INTO comments (content, note_id, author_id, parent_id)
         VALUES ($1, $2, $3, $4)
         RETURNING `+commentColumns,
		comment.Content, comment.NoteID, comment.AuthorID, comment.ParentID))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domainerrors.NewNotFound("note", comment.NoteID)
		}
		log.Error(ctx, "failed to create comment", zap.Error(err))
		return nil, domainerrors.NewDatabase("CommentRepository.Create", err)
	}
	return created, nil
}

// Delete удаляет комментарий вместе с ответами.
func (r *CommentRepository) Delete(ctx context.Context, commentID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to delete comment",
			zap.String("method", "CommentRepository.Delete"), zap.Error(err))
		return domainerrors.NewDatabase("CommentRepository.Delete", err)
	}
	if result.RowsAffected() == 0 {
		return domainerrors.NewNotFound("comment", commentID)
	}
	return nil
}
