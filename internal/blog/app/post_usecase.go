package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"noteblog/internal/blog/config"
	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
	"noteblog/internal/blog/ports/cache"
	"noteblog/internal/blog/ports/repositories"
)

// Ограничения выборок записей.
const (
	DefaultTopLimit = 5
	ErrEmptyPost    = "title, content or tags are required"
)

// PostUseCase представляет собой бизнес-логику работы с записями блога.
// Кэшируются только анонимные чтения: ответы зрителя содержат его флаг лайка.
type PostUseCase struct {
	postRepo    repositories.PostRepository
	profileRepo repositories.ProfileRepository
	cache       cache.TagCache
	planner     CachePlanner
	ttl         time.Duration
}

// NewPostUseCase создает новый экземпляр PostUseCase.
func NewPostUseCase(
	postRepo repositories.PostRepository,
	profileRepo repositories.ProfileRepository,
	tagCache cache.TagCache,
	planner CachePlanner,
	ttl time.Duration,
) *PostUseCase {
	return &PostUseCase{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		cache:       tagCache,
		planner:     planner,
		ttl:         ttl,
	}
}

func (uc *PostUseCase) plan(postID string, view bool) []string {
	if uc.planner.Mode == config.InvalidationTTL || (view && !uc.planner.InvalidateOnView) {
		return nil
	}
	if uc.planner.Mode == config.InvalidationFine {
		if view {
			return []string{PostTag(postID)}
		}
		return []string{PostTag(postID), TagPostsList}
	}
	return []string{TagPosts}
}

func postTags(posts []*entities.Post) []string {
	tags := []string{TagPosts, TagPostsList}
	for _, p := range posts {
		tags = append(tags, PostTag(p.ID))
	}
	return tags
}

// ListPosts возвращает страницу записей.
func (uc *PostUseCase) ListPosts(ctx context.Context, filter entities.PostFilter) (*entities.PostPage, error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Tag = strings.TrimSpace(filter.Tag)

	load := func() (*entities.PostPage, error) {
		posts, total, err := uc.postRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &entities.PostPage{
			Posts:      posts,
			Pagination: entities.NewPagination(filter.PageRequest, total),
			Search:     filter.Search,
		}, nil
	}

	var (
		page *entities.PostPage
		err  error
	)
	if filter.ViewerID == "" {
		page, err = cached(ctx, uc.cache, PostListKey(filter), uc.ttl,
			func(p *entities.PostPage) []string { return postTags(p.Posts) }, load)
	} else {
		page, err = load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return page, nil
}

// GetPost возвращает запись с флагом лайка зрителя.
func (uc *PostUseCase) GetPost(ctx context.Context, postID, viewerID string) (*entities.Post, error) {
	load := func() (*entities.Post, error) { return uc.postRepo.GetByID(ctx, postID, viewerID) }

	var (
		post *entities.Post
		err  error
	)
	if viewerID == "" {
		post, err = cached(ctx, uc.cache, "posts:detail:"+postID, uc.ttl,
			staticTags[*entities.Post](TagPosts, PostTag(postID)), load)
	} else {
		post, err = load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// CreatePost создает запись.
func (uc *PostUseCase) CreatePost(ctx context.Context, caller entities.Principal, input entities.PostInput) (*entities.Post, error) {
	if err := uc.profileRepo.Sync(ctx, caller); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSyncProfile, err)
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)

	post, err := uc.postRepo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	invalidate(ctx, uc.cache, uc.plan(post.ID, false)...)
	return post, nil
}

// UpdatePost применяет частичное изменение записи.
func (uc *PostUseCase) UpdatePost(ctx context.Context, postID string, patch entities.PostPatch) (*entities.Post, error) {
	if patch.IsEmpty() {
		return nil, &domainerrors.ValidationError{Message: ErrEmptyPost}
	}
	trim(&patch.Title)
	trim(&patch.Content)

	post, err := uc.postRepo.Update(ctx, postID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	invalidate(ctx, uc.cache, uc.plan(postID, false)...)
	return post, nil
}

// DeletePost удаляет запись.
func (uc *PostUseCase) DeletePost(ctx context.Context, postID string) error {
	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	invalidate(ctx, uc.cache, uc.plan(postID, false)...)
	return nil
}

// RecordView увеличивает счетчик просмотров записи.
func (uc *PostUseCase) RecordView(ctx context.Context, postID string) (int64, error) {
	views, err := uc.postRepo.IncrementViews(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to record post view: %w", err)
	}
	invalidate(ctx, uc.cache, uc.plan(postID, true)...)
	return views, nil
}

// ToggleLike ставит или снимает лайк вызывающего.
func (uc *PostUseCase) ToggleLike(ctx context.Context, caller entities.Principal, postID string) (*entities.LikeState, error) {
	if err := uc.profileRepo.Sync(ctx, caller); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSyncProfile, err)
	}

	state, err := uc.postRepo.ToggleLike(ctx, postID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle post like: %w", err)
	}

	invalidate(ctx, uc.cache, uc.plan(postID, false)...)
	return state, nil
}

func topLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopLimit
	}
	return min(limit, entities.MaxLimit)
}

// Popular возвращает записи с наибольшим числом лайков.
func (uc *PostUseCase) Popular(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error) {
	posts, err := uc.postRepo.Popular(ctx, topLimit(limit), viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular posts: %w", err)
	}
	return posts, nil
}

// MostViewed возвращает самые просматриваемые записи.
func (uc *PostUseCase) MostViewed(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error) {
	posts, err := uc.postRepo.MostViewed(ctx, topLimit(limit), viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list most viewed posts: %w", err)
	}
	return posts, nil
}

// LikedBy возвращает записи, лайкнутые пользователем.
func (uc *PostUseCase) LikedBy(ctx context.Context, userID string) ([]*entities.Post, error) {
	posts, err := uc.postRepo.LikedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked posts: %w", err)
	}
	return posts, nil
}

// Tags возвращает имена тегов, используемых записями.
func (uc *PostUseCase) Tags(ctx context.Context) ([]string, error) {
	tags, err := cached(ctx, uc.cache, "posts:tags", uc.ttl,
		staticTags[[]string](TagPosts, TagPostsList),
		func() ([]string, error) { return uc.postRepo.Tags(ctx) })
	if err != nil {
		return nil, fmt.Errorf("failed to list post tags: %w", err)
	}
	return tags, nil
}
