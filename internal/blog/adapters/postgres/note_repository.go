package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
	"noteblog/internal/blog/ports/repositories"
	"noteblog/pkg/logger"
)

const noteColumns = `n.id, n.title, n.content, n.author_id, n.view_count, n.created_at, n.updated_at`

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
	now  func() time.Time
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool, now: time.Now}
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.AuthorID,
		&note.ViewCount,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	note.Tags = make([]entities.Tag, 0)
	note.Likes.Users = make([]entities.LikeUser, 0)
	return &note, nil
}

// noteWhere строит условие выборки списка. Плейсхолдеры нумеруются с start.
func noteWhere(filter entities.NoteFilter, start int) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", start+len(args)-1)
	}

	if filter.Search != "" {
		p := next(containsPattern(filter.Search))
		conds = append(conds, fmt.Sprintf("(n.title ILIKE %s OR n.content ILIKE %s)", p, p))
	}
	if filter.AuthorID != "" {
		conds = append(conds, "n.author_id = "+next(filter.AuthorID))
	}
	if tags := entities.NormalizeTagNames(filter.Tags); len(tags) > 0 {
		slugs := make([]string, 0, len(tags))
		for _, t := range tags {
			slugs = append(slugs, t.Slug)
		}
		slugsArg := next(slugs)
		countArg := next(len(slugs))
		conds = append(conds, fmt.Sprintf(`n.id IN (
            SELECT nt.note_id
            FROM notes_to_tags nt
            JOIN tags t ON t.id = nt.tag_id
            WHERE t.slug = ANY(%s)
            GROUP BY nt.note_id
            HAVING COUNT(DISTINCT t.slug) = %s)`, slugsArg, countArg))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List возвращает страницу заметок и общее число совпадений.
func (r *NoteRepository) List(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, int, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	page := filter.PageRequest.Normalize()
	log.Debug(ctx, "listing notes",
		zap.String("search", filter.Search),
		zap.String("authorID", filter.AuthorID),
		zap.Strings("tags", filter.Tags),
		zap.Int("page", page.Page),
		zap.Int("limit", page.Limit))

	where, args := noteWhere(filter, 1)

	var totalCount int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notes n`+where, args...).Scan(&totalCount); err != nil {
		log.Error(ctx, "failed to count notes", zap.Error(err))
		return nil, 0, domainerrors.NewDatabase("NoteRepository.List", err)
	}

	limitArg := len(args) + 1
	query := fmt.Sprintf(`SELECT %s FROM notes n%s ORDER BY n.created_at DESC, n.id LIMIT $%d OFFSET $%d`,
		noteColumns, where, limitArg, limitArg+1)
	args = append(args, page.Limit, page.Offset())

	notes, err := r.queryNotes(ctx, r.pool, query, args...)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, 0, domainerrors.NewDatabase("NoteRepository.List", err)
	}

	if err := r.loadRelations(ctx, notes); err != nil {
		log.Error(ctx, "failed to load note relations", zap.Error(err))
		return nil, 0, domainerrors.NewDatabase("NoteRepository.List", err)
	}

	return notes, totalCount, nil
}

// ListRecent возвращает последние заметки, при необходимости одного автора.
func (r *NoteRepository) ListRecent(ctx context.Context, authorID string, limit int) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListRecent"))

	var (
		notes []*entities.Note
		err   error
	)
	if authorID == "" {
		notes, err = r.queryNotes(ctx, r.pool,
			`SELECT `+noteColumns+` FROM notes n ORDER BY n.created_at DESC LIMIT $1`, limit)
	} else {
		notes, err = r.queryNotes(ctx, r.pool,
			`SELECT `+noteColumns+` FROM notes n WHERE n.author_id = $1 ORDER BY n.created_at DESC LIMIT $2`,
			authorID, limit)
	}
	if err != nil {
		log.Error(ctx, "failed to list recent notes", zap.Error(err))
		return nil, domainerrors.NewDatabase("NoteRepository.ListRecent", err)
	}

	if err := r.loadRelations(ctx, notes); err != nil {
		log.Error(ctx, "failed to load note relations", zap.Error(err))
		return nil, domainerrors.NewDatabase("NoteRepository.ListRecent", err)
	}
	return notes, nil
}

// GetByID возвращает заметку с лайками и тегами. Счетчик просмотров не меняется.
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID))

	note, err := scanNote(r.pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes n WHERE n.id = $1`, noteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, domainerrors.NewNotFound("note", noteID)
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, domainerrors.NewDatabase("NoteRepository.GetByID", err)
	}

	if err := r.loadRelations(ctx, []*entities.Note{note}); err != nil {
		log.Error(ctx, "failed to load note relations", zap.Error(err))
		return nil, domainerrors.NewDatabase("NoteRepository.GetByID", err)
	}
	return note, nil
}

// IncrementViewCount атомарно увеличивает счетчик просмотров и возвращает новое значение.
func (r *NoteRepository) IncrementViewCount(ctx context.Context, noteID string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.IncrementViewCount"))

	var views int64
	err := r.pool.QueryRow(ctx,
		`UPDATE notes SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count`,
		noteID,
	).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainerrors.NewNotFound("note", noteID)
		}
		log.Error(ctx, "failed to increment view count", zap.Error(err))
		return 0, domainerrors.NewDatabase("NoteRepository.IncrementViewCount", err)
	}
	return views, nil
}

// Create сохраняет заметку и ее теги в одной транзакции.
func (r *NoteRepository) Create(ctx context.Context, authorID string, input entities.NoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("authorID", authorID))

	var note *entities.Note
	err := inTx(ctx, r.pool, "NoteRepository.Create", func(tx pgx.Tx) error {
		var err error
		note, err = scanNote(tx.QueryRow(ctx,
			`INSERT INTO notes AS n (title, content, author_id) VALUES ($1, $2, $3) RETURNING `+noteColumns,
			input.Title, input.Content, authorID))
		if err != nil {
			if isForeignKeyViolation(err) {
				return domainerrors.NewNotFound("profile", authorID)
			}
			return domainerrors.NewDatabase("NoteRepository.Create", err)
		}

		note.Tags, err = attachTags(ctx, tx, "notes_to_tags", "note_id", note.ID, input.Tags)
		if err != nil {
			return domainerrors.NewDatabase("NoteRepository.Create", err)
		}
		return nil
	})
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, err
	}

	log.Debug(ctx, "note created", zap.String("noteID", note.ID))
	return note, nil
}

// Update применяет частичное изменение. Переданный список тегов заменяет текущий.
func (r *NoteRepository) Update(ctx context.Context, noteID string, patch entities.NotePatch) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", noteID))

	err := inTx(ctx, r.pool, "NoteRepository.Update", func(tx pgx.Tx) error {
		var id string
		err := tx.QueryRow(ctx,
			`UPDATE notes
             SET title = COALESCE($2, title), content = COALESCE($3, content), updated_at = GREATEST(NOW(), created_at)
             WHERE id = $1
             RETURNING id`,
			noteID, patch.Title, patch.Content,
		).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainerrors.NewNotFound("note", noteID)
			}
			return domainerrors.NewDatabase("NoteRepository.Update", err)
		}

		if patch.Tags == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM notes_to_tags WHERE note_id = $1`, noteID); err != nil {
			return domainerrors.NewDatabase("NoteRepository.Update", err)
		}
		if _, err := attachTags(ctx, tx, "notes_to_tags", "note_id", noteID, *patch.Tags); err != nil {
			return domainerrors.NewDatabase("NoteRepository.Update", err)
		}
		return nil
	})
	if err != nil {
		if !domainerrors.IsNotFound(err) {
			log.Error(ctx, "failed to update note", zap.Error(err))
		}
		return nil, err
	}

	return r.GetByID(ctx, noteID)
}

// Delete удаляет заметку. Лайки, теги и комментарии удаляются каскадно.
func (r *NoteRepository) Delete(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, noteID)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return domainerrors.NewDatabase("NoteRepository.Delete", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.String("noteID", noteID))
		return domainerrors.NewNotFound("note", noteID)
	}
	return nil
}

// Exists проверяет наличие заметки.
func (r *NoteRepository) Exists(ctx context.Context, noteID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM notes WHERE id = $1)`, noteID).Scan(&exists)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to check note existence",
			zap.String("method", "NoteRepository.Exists"), zap.Error(err))
		return false, domainerrors.NewDatabase("NoteRepository.Exists", err)
	}
	return exists, nil
}

// IsOwner сообщает, является ли пользователь автором заметки.
func (r *NoteRepository) IsOwner(ctx context.Context, noteID, userID string) (bool, error) {
	var authorID string
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM notes WHERE id = $1`, noteID).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domainerrors.NewNotFound("note", noteID)
		}
		logger.Log(ctx).Error(ctx, "failed to check note owner",
			zap.String("method", "NoteRepository.IsOwner"), zap.Error(err))
		return false, domainerrors.NewDatabase("NoteRepository.IsOwner", err)
	}
	return authorID == userID, nil
}

// Stats считает общее число заметок, авторов и заметок с начала текущих суток (UTC).
func (r *NoteRepository) Stats(ctx context.Context) (*entities.NoteStats, error) {
	now := r.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var stats entities.NoteStats
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT author_id), COUNT(*) FILTER (WHERE created_at >= $1) FROM notes`,
		midnight,
	).Scan(&stats.TotalNotes, &stats.TotalAuthors, &stats.NotesToday)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to compute note stats",
			zap.String("method", "NoteRepository.Stats"), zap.Error(err))
		return nil, domainerrors.NewDatabase("NoteRepository.Stats", err)
	}
	return &stats, nil
}

func (r *NoteRepository) queryNotes(ctx context.Context, q querier, query string, args ...interface{}) ([]*entities.Note, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return notes, nil
}

// loadRelations подгружает лайки и теги для всех заметок двумя запросами.
func (r *NoteRepository) loadRelations(ctx context.Context, notes []*entities.Note) error {
	if len(notes) == 0 {
		return nil
	}

	ids := make([]string, 0, len(notes))
	byID := make(map[string]*entities.Note, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
		byID[n.ID] = n
	}

	likeRows, err := r.pool.Query(ctx,
		`SELECT l.note_id, l.user_id, COALESCE(p.email, '')
         FROM note_likes l
         LEFT JOIN profiles p ON p.id = l.user_id
         WHERE l.note_id = ANY($1)
         ORDER BY l.created_at`,
		ids)
	if err != nil {
		return fmt.Errorf("failed to load likes: %w", err)
	}
	for likeRows.Next() {
		var noteID string
		var user entities.LikeUser
		if err := likeRows.Scan(&noteID, &user.ID, &user.Email); err != nil {
			likeRows.Close()
			return fmt.Errorf("failed to scan like: %w", err)
		}
		if n, ok := byID[noteID]; ok {
			n.Likes.Users = append(n.Likes.Users, user)
			n.Likes.Count++
		}
	}
	likeRows.Close()
	if err := likeRows.Err(); err != nil {
		return fmt.Errorf("error iterating likes: %w", err)
	}

	tagRows, err := r.pool.Query(ctx,
		`SELECT nt.note_id, t.id, t.name, t.slug
         FROM notes_to_tags nt
         JOIN tags t ON t.id = nt.tag_id
         WHERE nt.note_id = ANY($1)
         ORDER BY t.name`,
		ids)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var noteID string
		var tag entities.Tag
		if err := tagRows.Scan(&noteID, &tag.ID, &tag.Name, &tag.Slug); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		if n, ok := byID[noteID]; ok {
			n.Tags = append(n.Tags, tag)
		}
	}
	return tagRows.Err()
}
