// Package config предоставляет загрузку конфигурации из переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"noteblog/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgEnvFileLoaded        = "environment file loaded"
	msgEnvFileMissing       = "environment file not found, using process environment"

	errFailedLoadEnvFile       = "failed to load environment file"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет T из окружения. Если envFile задан и существует, его значения
// подмешиваются в окружение процесса (уже заданные переменные не перезаписываются).
func Load[T any](ctx context.Context, serviceName, envFile string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, envFile))

	if envFile != "" {
		switch err := godotenv.Load(envFile); {
		case err == nil:
			log.Debug(ctx, msgEnvFileLoaded, zap.String(attrPath, envFile))
		case errors.Is(err, fs.ErrNotExist):
			log.Debug(ctx, msgEnvFileMissing, zap.String(attrPath, envFile))
		default:
			log.Error(ctx, errFailedLoadEnvFile, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errFailedLoadEnvFile, err)
		}
	}

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, errFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
