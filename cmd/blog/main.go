package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cacheAdapter "noteblog/internal/blog/adapters/cache"
	grpcServer "noteblog/internal/blog/adapters/grpc"
	httpServer "noteblog/internal/blog/adapters/http"
	"noteblog/internal/blog/adapters/http/apierror"
	"noteblog/internal/blog/adapters/http/dto"
	"noteblog/internal/blog/adapters/postgres"
	authAdapter "noteblog/internal/blog/adapters/services"
	"noteblog/internal/blog/app"
	"noteblog/internal/blog/config"
	"noteblog/internal/blog/db"
	"noteblog/internal/blog/ports/cache"
	"noteblog/internal/blog/ports/services"
	"noteblog/internal/blog/resilience"
	pkgredis "noteblog/pkg/db/redis"
	"noteblog/pkg/logger"
	"noteblog/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "BLOG_LOGGER_MODE"
	EnvLoggerLevel = "BLOG_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateVerifier       = "failed to create token verifier"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrStartGRPCServer      = "failed to start gRPC server"
	ErrShutdown             = "graceful shutdown finished with errors"
	ErrCloseRedis           = "failed to close Redis connection"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "blog service started"
	LogServiceShutdownDone = "blog service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing cache"
	LogCacheDisabled       = "cache disabled, serving every read from the database"
	LogCacheUnavailable    = "Redis unavailable at startup, continuing without cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingResources    = "closing database and cache connections"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", cfg.Deployment.Environment),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("cache_invalidation", string(cfg.Cache.Invalidation)),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres, cfg.Postgres.MigrationsDir)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		caches := initCache(ctx, cfg)
		tagCache := caches.tags

		verifier, err := authAdapter.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWKSURL(), cfg.Auth.Audience)
		if err != nil {
			log.Error(ctx, ErrCreateVerifier, zap.Error(err))
			if caches.client != nil {
				_ = caches.client.Close()
			}
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		repos := postgres.NewRepositoryFactory(database.Pool())
		planner := app.CachePlanner{Mode: cfg.Cache.Invalidation, InvalidateOnView: cfg.Cache.InvalidateOnView}

		notesService := app.NewNoteUseCase(
			repos.NoteRepository(),
			repos.NoteLikeRepository(),
			repos.TagRepository(),
			repos.ProfileRepository(),
			tagCache,
			app.NoteOptions{
				Planner:        planner,
				Revalidate:     cfg.Cache.Revalidate,
				CountViewOnGet: cfg.Notes.CountViewOnGet,
				RecentLimit:    cfg.Notes.RecentLimit,
			},
		)
		postsService := app.NewPostUseCase(repos.PostRepository(), repos.ProfileRepository(), tagCache, planner, cfg.Cache.Revalidate)
		profilesService := app.NewProfileUseCase(repos.ProfileRepository(), tagCache, cfg.Cache.Revalidate)
		commentsService := app.NewCommentUseCase(
			repos.CommentRepository(),
			repos.NoteRepository(),
			repos.ProfileRepository(),
			tagCache,
			cfg.Cache.Revalidate,
		)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
			ErrorHandler: apierror.ErrorHandler,
		})

		httpServer.SetupRouter(fiberApp, httpServer.Dependencies{
			Notes:     notesService,
			Posts:     postsService,
			Profiles:  profilesService,
			Comments:  commentsService,
			Verifier:  verifier,
			Database:  database,
			Cache:     caches.checker,
			Limiter:   caches.limiter,
			RateLimit: cfg.RateLimit,
			ClientConfig: dto.ClientConfigResponse{
				AuthURL:     cfg.Auth.ProviderURL,
				AuthAnonKey: cfg.Auth.AnonKey,
				SiteURL:     cfg.Deployment.SiteURL(),
				Environment: cfg.Deployment.Environment,
			},
		})

		watchCtx, stopWatch := context.WithCancel(ctx)
		defer stopWatch()

		var adminServer *grpcServer.Server
		if cfg.GRPC.Enabled {
			adminServer = grpcServer.New(&cfg.GRPC, map[string]services.HealthChecker{"database": database})
			if err := adminServer.Start(ctx); err != nil {
				log.Error(ctx, ErrStartGRPCServer, zap.Error(err))
				adminServer = nil
			} else {
				go adminServer.Watch(watchCtx, cfg.GRPC.HealthInterval)
			}
		}

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		err = shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.ShutdownWithContext(ctx)
			},
			// Остановка gRPC сервера и наблюдения за зависимостями.
			func(ctx context.Context) error {
				stopWatch()
				if adminServer != nil {
					adminServer.Stop(ctx)
				}
				return nil
			},
		)
		if err != nil {
			log.Warn(ctx, ErrShutdown, zap.Error(err))
		}

		log.Info(ctx, LogClosingResources)
		if caches.client != nil {
			if err := caches.client.Close(); err != nil {
				log.Warn(ctx, ErrCloseRedis, zap.Error(err))
			}
		}
		database.Close(ctx)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// cacheDeps - зависимости, построенные поверх Redis.
type cacheDeps struct {
	client  *redis.Client
	tags    cache.TagCache
	limiter cache.RateLimiter
	checker services.HealthChecker
}

// initCache подключает Redis и строит кэш с тегами и ограничитель частоты.
// Выключенный или недоступный Redis дает NoopCache без ограничителя.
func initCache(ctx context.Context, cfg *config.Config) cacheDeps {
	log := logger.Log(ctx)
	deps := cacheDeps{tags: cacheAdapter.NoopCache{}}

	if !cfg.Cache.Enabled {
		log.Info(ctx, LogCacheDisabled)
	}
	if !cfg.Cache.Enabled && !cfg.RateLimit.Enabled {
		return deps
	}

	client, err := pkgredis.NewClient(ctx, cfg.Redis.ClientConfig())
	if err != nil {
		log.Warn(ctx, LogCacheUnavailable, zap.Error(err))
		return deps
	}
	deps.client = client

	if cfg.RateLimit.Enabled {
		deps.limiter = cacheAdapter.NewRedisRateLimiter(client, cfg.Cache.Prefix)
	}

	if cfg.Cache.Enabled {
		tagCache := cacheAdapter.NewResilientCache(
			cacheAdapter.NewRedisTagCache(client, cfg.Cache.Prefix, cfg.Cache.Revalidate),
			resilience.NewServiceResilience("redis", resilience.DefaultCircuitBreakerConfig(), resilience.CacheRetryConfig()),
		)
		deps.tags = tagCache
		deps.checker = tagCache
	}

	return deps
}
