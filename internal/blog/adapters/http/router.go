// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"noteblog/internal/blog/adapters/http/apierror"
	"noteblog/internal/blog/adapters/http/dto"
	"noteblog/internal/blog/adapters/http/handlers"
	"noteblog/internal/blog/adapters/http/middleware"
	"noteblog/internal/blog/config"
	"noteblog/internal/blog/ports/cache"
	"noteblog/internal/blog/ports/services"
)

// MsgRouteNotFound - ответ для несуществующих маршрутов.
const MsgRouteNotFound = "Route not found"

// Dependencies - сервисы и инфраструктура, нужные маршрутам.
type Dependencies struct {
	Notes        services.NotesService
	Posts        services.PostsService
	Profiles     services.ProfilesService
	Comments     services.CommentsService
	Verifier     services.TokenVerifier
	Database     services.HealthChecker
	Cache        services.HealthChecker
	Limiter      cache.RateLimiter
	RateLimit    config.RateLimitConfig
	ClientConfig dto.ClientConfigResponse
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	notesHandler := handlers.NewNotesHandler(deps.Notes)
	postsHandler := handlers.NewPostsHandler(deps.Posts)
	profilesHandler := handlers.NewProfilesHandler(deps.Profiles)
	commentsHandler := handlers.NewCommentsHandler(deps.Comments)
	systemHandler := handlers.NewSystemHandler(deps.Notes, deps.Database, deps.Cache, deps.ClientConfig)

	limiter := deps.Limiter
	if !deps.RateLimit.Enabled {
		limiter = nil
	}
	limitLikes := middleware.RateLimit(limiter, "likes", deps.RateLimit.LikeToggles, deps.RateLimit.Window)
	limitCreates := middleware.RateLimit(limiter, "creates", deps.RateLimit.Creates, deps.RateLimit.Window)
	auth := middleware.RequireAuth

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestContextMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewAuthMiddleware(deps.Verifier))

	api := app.Group("/api")

	api.Get("/health", systemHandler.Health)
	api.Get("/client-config", systemHandler.ClientConfig)
	api.Get("/tags", notesHandler.ListTags)
	api.Post("/revalidate", auth(systemHandler.Revalidate))

	// Заметки. Статические пути регистрируются до /:id.
	notes := api.Group("/notes")
	notes.Get("/", notesHandler.ListNotes)
	notes.Post("/", auth(limitCreates(notesHandler.CreateNote)))
	notes.Get("/recent", notesHandler.RecentNotes)
	notes.Get("/stats", notesHandler.Stats)
	notes.Get("/liked", auth(notesHandler.LikedNotes))
	notes.Get("/:id", notesHandler.GetNote)
	notes.Put("/:id", auth(notesHandler.UpdateNote))
	notes.Patch("/:id", auth(notesHandler.UpdateNote))
	notes.Delete("/:id", auth(notesHandler.DeleteNote))
	notes.Get("/:id/like", notesHandler.LikeStatus)
	notes.Post("/:id/like", auth(limitLikes(notesHandler.ToggleLike)))
	notes.Get("/:id/view", notesHandler.RecordView)
	notes.Post("/:id/view", notesHandler.RecordView)
	notes.Get("/:id/comments", commentsHandler.ListComments)
	notes.Post("/:id/comments", auth(limitCreates(commentsHandler.CreateComment)))

	api.Delete("/comments/:id", auth(commentsHandler.DeleteComment))

	// Профили.
	api.Put("/profiles", auth(profilesHandler.UpdateProfile))
	api.Get("/profiles/:id", profilesHandler.GetProfile)

	// Записи блога.
	posts := api.Group("/posts")
	posts.Get("/", postsHandler.ListPosts)
	posts.Post("/", auth(limitCreates(postsHandler.CreatePost)))
	posts.Get("/popular", postsHandler.Popular)
	posts.Get("/most-viewed", postsHandler.MostViewed)
	posts.Get("/tags", postsHandler.Tags)
	posts.Get("/liked", postsHandler.LikedPosts)
	posts.Get("/:id", postsHandler.GetPost)
	posts.Put("/:id", auth(postsHandler.UpdatePost))
	posts.Patch("/:id", auth(postsHandler.UpdatePost))
	posts.Delete("/:id", auth(postsHandler.DeletePost))
	posts.Post("/:id/like", auth(limitLikes(postsHandler.ToggleLike)))
	posts.Get("/:id/view", postsHandler.RecordView)
	posts.Post("/:id/view", postsHandler.RecordView)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		return apierror.Write(ctx, apierror.New(fiber.StatusNotFound, apierror.CodeNotFound, MsgRouteNotFound))
	})
}
