// Package db поднимает базу данных блога: миграции и пул соединений.
package db

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"noteblog/internal/blog/config"
	"noteblog/pkg/db/postgres"
	"noteblog/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing blog database"
	LogDBInitialized     = "blog database initialized successfully"
	LogMigrationStarting = "starting blog database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply blog database migrations"
	ErrDBConnection = "failed to connect to blog database"
	ErrGetPath      = "failed to get path"
)

// DB представляет соединение с базой данных блога.
type DB struct {
	database *postgres.Database
}

// New применяет миграции из migrationsDir и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := sourceURL(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", ErrDBMigrations, ErrGetPath, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.PoolOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// sourceURL переводит каталог миграций в file:// URL с абсолютным путем.
func sourceURL(dir string) (string, error) {
	if strings.HasPrefix(dir, "file://") {
		return dir, nil
	}
	if !filepath.IsAbs(dir) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", err
		}
		dir = abs
	}
	return "file://" + dir, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
