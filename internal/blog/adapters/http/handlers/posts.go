package handlers

import (
	"github.com/gofiber/fiber/v3"

	"noteblog/internal/blog/adapters/http/dto"
	"noteblog/internal/blog/adapters/http/requestctx"
	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
	"noteblog/internal/blog/ports/services"
)

// Константы сообщений для логирования.
const (
	LogHandlerListPosts      = "handling list posts request"
	LogHandlerCreatePost     = "handling create post request"
	LogHandlerGetPost        = "handling get post request"
	LogHandlerUpdatePost     = "handling update post request"
	LogHandlerDeletePost     = "handling delete post request"
	LogHandlerPopularPosts   = "handling popular posts request"
	LogHandlerMostViewed     = "handling most viewed posts request"
	LogHandlerLikedPosts     = "handling liked posts request"
	LogHandlerPostTags       = "handling post tags request"
	LogHandlerTogglePostLike = "handling toggle post like request"
	LogHandlerPostView       = "handling record post view request"
)

// ErrMsgUserRequired - у анонимного запроса нет userId.
const ErrMsgUserRequired = "is required"

// PostsHandler обработчик HTTP-запросов для записей блога.
type PostsHandler struct {
	posts services.PostsService
}

// NewPostsHandler создает новый экземпляр обработчика записей.
func NewPostsHandler(posts services.PostsService) *PostsHandler {
	return &PostsHandler{posts: posts}
}

// ListPosts обрабатывает запрос списка записей.
func (h *PostsHandler) ListPosts(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "PostsHandler.ListPosts", LogHandlerListPosts)

	q, err := dto.ParseListQuery(ctx)
	if err != nil {
		return fail(ctx, log, "invalid list query", err)
	}

	page, err := h.posts.ListPosts(userCtx, entities.PostFilter{
		Search:      q.Search,
		Tag:         q.Tag,
		ViewerID:    requestctx.ViewerID(ctx),
		PageRequest: q.PageRequest(),
	})
	if err != nil {
		return fail(ctx, log, "failed to list posts", err)
	}

	return send(ctx, fiber.StatusOK, dto.ListPostsResponse{
		Posts:      dto.NewPosts(page.Posts),
		Pagination: dto.NewPagination(page.Pagination),
		Search:     page.Search,
	})
}

// CreatePost обрабатывает запрос на создание записи.
func (h *PostsHandler) CreatePost(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "PostsHandler.CreatePost", LogHandlerCreatePost)

	principal, err := caller(ctx)
	if err != nil {
		return fail(ctx, log, "unauthenticated", err)
	}

	var req dto.CreatePostRequest
	if err := dto.BindBody(ctx, &req); err != nil {
		return fail(ctx, log, "invalid create post request", err)
	}

	post, err := h.posts.CreatePost(userCtx, principal, req.Input())
	if err != nil {
		return fail(ctx, log, "failed to create post", err)
	}

	return send(ctx, fiber.StatusCreated, dto.NewPost(post))
}

// GetPost обрабатывает запрос записи по ID.
func (h *PostsHandler) GetPost(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "PostsHandler.GetPost", LogHandlerGetPost)

	postID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid post id", err)
	}

	post, err := h.posts.GetPost(userCtx, postID, requestctx.ViewerID(ctx))
	if err != nil {
		return fail(ctx, log, "failed to get post", err)
	}

	return send(ctx, fiber.StatusOK, dto.NewPost(post))
}

// UpdatePost обрабатывает PUT и PATCH записи.
func (h *PostsHandler) UpdatePost(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "PostsHandler.UpdatePost", LogHandlerUpdatePost)

	postID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid post id", err)
	}

	var req dto.UpdatePostRequest
	if err := dto.BindBody(ctx, &req); err != nil {
		return fail(ctx, log, "invalid update post request", err)
	}

	post, err := h.posts.UpdatePost(userCtx, postID, req.Patch())
	if err != nil {
		return fail(ctx, log, "failed to update post", err)
	}

	return send(ctx, fiber.StatusOK, dto.NewPost(post))
}

// DeletePost обрабатывает удаление записи.
func (h *PostsHandler) DeletePost(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "PostsHandler.DeletePost", LogHandlerDeletePost)

	postID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid post id", err)
	}

	if err := h.posts.DeletePost(userCtx, postID); err != nil {
		return fail(ctx, log, "failed to delete post", err)
	}

	return send(ctx, fiber.StatusOK, dto.DeleteResponse{Success: true, Message: MsgPostDeleted})
}

// Popular возвращает записи с наибольшим числом лайков.
func (h *PostsHandler) Popular(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "PostsHandler.Popular", LogHandlerPopularPosts)

	limit, err := dto.QueryInt(ctx, "limit", 0)
	if err != nil {
		return fail(ctx, log, "invalid limit", err)
	}

	posts, err := h.posts.Popular(userCtx, limit, requestctx.ViewerID(ctx))
	if err != nil {
		return fail(ctx, log, "failed to list popular posts", err)
	}

	return send(ctx, fiber.StatusOK, dto.PostsResponse{Posts: dto.NewPosts(posts)})
}

// MostViewed возвращает самые просматриваемые записи.
func (h *PostsHandler) MostViewed(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "PostsHandler.MostViewed", LogHandlerMostViewed)

	limit, err := dto.QueryInt(ctx, "limit", 0)
	if err != nil {
		return fail(ctx, log, "invalid limit", err)
	}

	posts, err := h.posts.MostViewed(userCtx, limit, requestctx.ViewerID(ctx))
	if err != nil {
		return fail(ctx, log, "failed to list most viewed posts", err)
	}

	return send(ctx, fiber.StatusOK, dto.PostsResponse{Posts: dto.NewPosts(posts)})
}

// LikedPosts возвращает записи, лайкнутые userId или вызывающим.
func (h *PostsHandler) LikedPosts(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "PostsHandler.LikedPosts", LogHandlerLikedPosts)

	userID, err := dto.ParseOptionalUUID(ctx, "userId")
	if err != nil {
		return fail(ctx, log, "invalid user id", err)
	}
	if userID == "" {
		userID = requestctx.ViewerID(ctx)
	}
	if userID == "" {
		return fail(ctx, log, "missing user id", domainerrors.NewValidation("userId", ErrMsgUserRequired))
	}

	posts, err := h.posts.LikedBy(userCtx, userID)
	if err != nil {
		return fail(ctx, log, "failed to list liked posts", err)
	}

	return send(ctx, fiber.StatusOK, dto.PostsResponse{Posts: dto.NewPosts(posts)})
}

// Tags возвращает имена тегов, используемых записями.
func (h *PostsHandler) Tags(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "PostsHandler.Tags", LogHandlerPostTags)

	tags, err := h.posts.Tags(userCtx)
	if err != nil {
		return fail(ctx, log, "failed to list post tags", err)
	}
	if tags == nil {
		tags = []string{}
	}

	return send(ctx, fiber.StatusOK, dto.PostTagsResponse{Tags: tags})
}

// ToggleLike переключает лайк записи.
func (h *PostsHandler) ToggleLike(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "PostsHandler.ToggleLike", LogHandlerTogglePostLike)

	principal, err := caller(ctx)
	if err != nil {
		return fail(ctx, log, "unauthenticated", err)
	}

	postID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid post id", err)
	}

	state, err := h.posts.ToggleLike(userCtx, principal, postID)
	if err != nil {
		return fail(ctx, log, "failed to toggle post like", err)
	}

	return send(ctx, fiber.StatusOK, dto.PostLikeResponse{
		PostID:    postID,
		UserID:    principal.UserID,
		IsLiked:   state.IsLiked,
		LikeCount: state.LikeCount,
		Message:   likeMessage(state.IsLiked),
	})
}

// RecordView увеличивает счетчик просмотров записи.
func (h *PostsHandler) RecordView(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "PostsHandler.RecordView", LogHandlerPostView)

	postID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid post id", err)
	}

	views, err := h.posts.RecordView(userCtx, postID)
	if err != nil {
		return fail(ctx, log, "failed to record post view", err)
	}

	return send(ctx, fiber.StatusOK, dto.PostViewResponse{Message: MsgViewRecorded, Views: views})
}
