package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
	"noteblog/internal/blog/ports/repositories"
	"noteblog/pkg/logger"
)

// postColumns ожидает идентификатор смотрящего в $1 (пустая строка для анонима).
const postColumns = `p.id, p.title, p.content, p.views, p.created_at, p.updated_at,
    (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS like_count,
    EXISTS(SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id::text = $1) AS liked`

var postLikes = likeTable{
	operation:   "PostRepository.ToggleLike",
	resource:    "post",
	targetTable: "posts",
	likesTable:  "post_likes",
	targetCol:   "post_id",
}

// PostRepository реализует интерфейс repositories.PostRepository.
type PostRepository struct {
	pool PgxPoolInterface
}

// NewPostRepository создает новый репозиторий записей блога.
func NewPostRepository(pool PgxPoolInterface) repositories.PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row pgx.Row) (*entities.Post, error) {
	var post entities.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Views,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.LikeCount,
		&post.IsLikedByUser,
	)
	if err != nil {
		return nil, err
	}
	post.Tags = make([]string, 0)
	return &post, nil
}

func postWhere(filter entities.PostFilter, start int) (string, []interface{}) {
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
		conds = append(conds, fmt.Sprintf("(p.title ILIKE %s OR p.content ILIKE %s)", p, p))
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		conds = append(conds, fmt.Sprintf(`p.id IN (
            SELECT pt.post_id
            FROM posts_to_tags pt
            JOIN tags t ON t.id = pt.tag_id
            WHERE t.slug = %s)`, next(entities.TagSlug(tag))))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List возвращает страницу записей и общее число совпадений.
func (r *PostRepository) List(ctx context.Context, filter entities.PostFilter) ([]*entities.Post, int, error) {
	log := logger.Log(ctx).With(zap.String("method", "PostRepository.List"))
	page := filter.PageRequest.Normalize()

	where, countArgs := postWhere(filter, 1)
	var totalCount int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts p`+where, countArgs...).Scan(&totalCount); err != nil {
		log.Error(ctx, "failed to count posts", zap.Error(err))
		return nil, 0, domainerrors.NewDatabase("PostRepository.List", err)
	}

	where, args := postWhere(filter, 2)
	args = append([]interface{}{filter.ViewerID}, args...)
	limitArg := len(args) + 1
	query := fmt.Sprintf(`SELECT %s FROM posts p%s ORDER BY p.created_at DESC, p.id LIMIT $%d OFFSET $%d`,
		postColumns, where, limitArg, limitArg+1)
	args = append(args, page.Limit, page.Offset())

	posts, err := r.queryPosts(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "failed to list posts", zap.Error(err))
		return nil, 0, domainerrors.NewDatabase("PostRepository.List", err)
	}
	return posts, totalCount, nil
}

// GetByID возвращает запись с числом лайков и флагом лайка смотрящего.
func (r *PostRepository) GetByID(ctx context.Context, postID, viewerID string) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", "PostRepository.GetByID"))

	post, err := scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts p WHERE p.id = $2`, viewerID, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.NewNotFound("post", postID)
		}
		log.Error(ctx, "failed to get post", zap.Error(err))
		return nil, domainerrors.NewDatabase("PostRepository.GetByID", err)
	}

	if err := r.loadTags(ctx, []*entities.Post{post}); err != nil {
		log.Error(ctx, "failed to load post tags", zap.Error(err))
		return nil, domainerrors.NewDatabase("PostRepository.GetByID", err)
	}
	return post, nil
}

// Create сохраняет запись и ее теги.
func (r *PostRepository) Create(ctx context.Context, input entities.PostInput) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", "PostRepository.Create"))

	var post entities.Post
	err := inTx(ctx, r.pool, "PostRepository.Create", func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO posts (title, content) VALUES ($1, $2)
             RETURNING id, title, content, views, created_at, updated_at`,
			input.Title, input.Content,
		).Scan(&post.ID, &post.Title, &post.Content, &post.Views, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return domainerrors.NewDatabase("PostRepository.Create", err)
		}

		tags, err := attachTags(ctx, tx, "posts_to_tags", "post_id", post.ID, input.Tags)
		if err != nil {
			return domainerrors.NewDatabase("PostRepository.Create", err)
		}
		post.Tags = make([]string, 0, len(tags))
		for _, t := range tags {
			post.Tags = append(post.Tags, t.Name)
		}
		return nil
	})
	if err != nil {
		log.Error(ctx, "failed to create post", zap.Error(err))
		return nil, err
	}
	return &post, nil
}

// Update применяет частичное изменение записи.
func (r *PostRepository) Update(ctx context.Context, postID string, patch entities.PostPatch) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", "PostRepository.Update"))

	err := inTx(ctx, r.pool, "PostRepository.Update", func(tx pgx.Tx) error {
		var id string
		err := tx.QueryRow(ctx,
			`UPDATE posts
             SET title = COALESCE($2, title), content = COALESCE($3, content), updated_at = GREATEST(NOW(), created_at)
             WHERE id = $1
             RETURNING id`,
			postID, patch.Title, patch.Content,
		).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainerrors.NewNotFound("post", postID)
			}
			return domainerrors.NewDatabase("PostRepository.Update", err)
		}

		if patch.Tags == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM posts_to_tags WHERE post_id = $1`, postID); err != nil {
			return domainerrors.NewDatabase("PostRepository.Update", err)
		}
		if _, err := attachTags(ctx, tx, "posts_to_tags", "post_id", postID, *patch.Tags); err != nil {
			return domainerrors.NewDatabase("PostRepository.Update", err)
		}
		return nil
	})
	if err != nil {
		if !domainerrors.IsNotFound(err) {
			log.Error(ctx, "failed to update post", zap.Error(err))
		}
		return nil, err
	}

	return r.GetByID(ctx, postID, "")
}

// Delete удаляет запись.
func (r *PostRepository) Delete(ctx context.Context, postID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to delete post",
			zap.String("method", "PostRepository.Delete"), zap.Error(err))
		return domainerrors.NewDatabase("PostRepository.Delete", err)
	}
	if result.RowsAffected() == 0 {
		return domainerrors.NewNotFound("post", postID)
	}
	return nil
}

// IncrementViews атомарно увеличивает счетчик просмотров записи.
func (r *PostRepository) IncrementViews(ctx context.Context, postID string) (int64, error) {
	var views int64
	err := r.pool.QueryRow(ctx,
		`UPDATE posts SET views = views + 1 WHERE id = $1 RETURNING views`, postID,
	).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainerrors.NewNotFound("post", postID)
		}
		return 0, domainerrors.NewDatabase("PostRepository.IncrementViews", err)
	}
	return views, nil
}

// ToggleLike переключает лайк пользователя на записи.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID string) (*entities.LikeState, error) {
	state, err := toggleLike(ctx, r.pool, postLikes, postID, userID)
	if err != nil {
		if !domainerrors.IsNotFound(err) {
			logger.Log(ctx).Error(ctx, "failed to toggle post like",
				zap.String("method", "PostRepository.ToggleLike"), zap.Error(err))
		}
		return nil, err
	}
	return state, nil
}

// Popular возвращает записи с наибольшим числом лайков.
func (r *PostRepository) Popular(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error) {
	posts, err := r.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts p ORDER BY like_count DESC, p.created_at DESC LIMIT $2`,
		viewerID, limit)
	if err != nil {
		return nil, domainerrors.NewDatabase("PostRepository.Popular", err)
	}
	return posts, nil
}

// MostViewed возвращает самые просматриваемые записи.
func (r *PostRepository) MostViewed(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error) {
	posts, err := r.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts p ORDER BY p.views DESC, p.created_at DESC LIMIT $2`,
		viewerID, limit)
	if err != nil {
		return nil, domainerrors.NewDatabase("PostRepository.MostViewed", err)
	}
	return posts, nil
}

// LikedBy возвращает записи, лайкнутые пользователем.
func (r *PostRepository) LikedBy(ctx context.Context, userID string) ([]*entities.Post, error) {
	posts, err := r.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts p
         WHERE p.id IN (SELECT post_id FROM post_likes WHERE user_id::text = $1)
         ORDER BY p.created_at DESC`,
		userID)
	if err != nil {
		return nil, domainerrors.NewDatabase("PostRepository.LikedBy", err)
	}
	return posts, nil
}

// Tags возвращает имена тегов, используемых записями.
func (r *PostRepository) Tags(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT t.name FROM tags t JOIN posts_to_tags pt ON pt.tag_id = t.id ORDER BY t.name`)
	if err != nil {
		return nil, domainerrors.NewDatabase("PostRepository.Tags", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, domainerrors.NewDatabase("PostRepository.Tags", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, domainerrors.NewDatabase("PostRepository.Tags", err)
	}
	return names, nil
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*entities.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	posts := make([]*entities.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if err := r.loadTags(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) loadTags(ctx context.Context, posts []*entities.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	byID := make(map[string]*entities.Post, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	rows, err := r.pool.Query(ctx,
		`SELECT pt.post_id, t.name
         FROM posts_to_tags pt
         JOIN tags t ON t.id = pt.tag_id
         WHERE pt.post_id = ANY($1)
         ORDER BY t.name`,
		ids)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID, name string
		if err := rows.Scan(&postID, &name); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		if p, ok := byID[postID]; ok {
			p.Tags = append(p.Tags, name)
		}
	}
	return rows.Err()
}
