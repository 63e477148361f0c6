package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
	"noteblog/internal/blog/ports/repositories"
	"noteblog/pkg/logger"
)

// TagRepository реализует интерфейс repositories.TagRepository.
type TagRepository struct {
	pool PgxPoolInterface
}

// NewTagRepository создает новый репозиторий тегов.
func NewTagRepository(pool PgxPoolInterface) repositories.TagRepository {
	return &TagRepository{pool: pool}
}

// List возвращает теги с числом заметок, самые используемые первыми.
func (r *TagRepository) List(ctx context.Context) ([]*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.List"))

	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.name, t.slug, COUNT(nt.note_id)
         FROM tags t
         LEFT JOIN notes_to_tags nt ON nt.tag_id = t.id
         GROUP BY t.id, t.name, t.slug
         ORDER BY COUNT(nt.note_id) DESC, t.name`)
	if err != nil {
		log.Error(ctx, "failed to list tags", zap.Error(err))
		return nil, domainerrors.NewDatabase("TagRepository.List", err)
	}
	defer rows.Close()

	tags := make([]*entities.Tag, 0)
	for rows.Next() {
		var tag entities.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.NoteCount); err != nil {
			log.Error(ctx, "failed to scan tag", zap.Error(err))
			return nil, domainerrors.NewDatabase("TagRepository.List", err)
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, domainerrors.NewDatabase("TagRepository.List", err)
	}
	return tags, nil
}

// attachTags находит или создает теги по slug и связывает их с владельцем
// через таблицу связей joinTable(ownerColumn, tag_id).
func attachTags(ctx context.Context, q querier, joinTable, ownerColumn, ownerID string, names []string) ([]entities.Tag, error) {
	tags := entities.NormalizeTagNames(names)
	linkQuery := fmt.Sprintf(`INSERT INTO %s (%s, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, joinTable, ownerColumn)

	for i := range tags {
		err := q.QueryRow(ctx,
			`INSERT INTO tags (name, slug) VALUES ($1, $2)
             ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
             RETURNING id, name`,
			tags[i].Name, tags[i].Slug,
		).Scan(&tags[i].ID, &tags[i].Name)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert tag %q: %w", tags[i].Slug, err)
		}

		if _, err := q.Exec(ctx, linkQuery, ownerID, tags[i].ID); err != nil {
			return nil, fmt.Errorf("failed to link tag %q: %w", tags[i].Slug, err)
		}
	}
	return tags, nil
}
