// Package services содержит реализации интерфейсов внешних сервисов.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"noteblog/internal/blog/domain/entities"
	"noteblog/internal/blog/ports/services"
	"noteblog/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodVerify       = "VerifierJWT.Verify"
	msgTokenVerified   = "token verified successfully"
	msgTokenExpired    = "token has expired"
	msgErrParsingToken = "error parsing token" //nolint:gosec
	errCtxVerifying    = "verifying token"
	errCreateJWKS      = "failed to create JWKS keyfunc"
)

// Ошибки конфигурации проверки подписи.
var (
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrNoVerifierKey    = errors.New("no key configured for token algorithm")
)

// Claims - утверждения токена провайдера аутентификации.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// VerifierJWT реализует services.TokenVerifier. Токены HS256 проверяются общим секретом,
// асимметричные - ключами из JWKS провайдера.
type VerifierJWT struct {
	secret  []byte
	jwks    jwt.Keyfunc
	parser  *jwt.Parser
	methods []string
}

// Option настраивает VerifierJWT.
type Option func(*VerifierJWT)

// WithKeyfunc задает источник публичных ключей вместо загрузки JWKS по сети.
func WithKeyfunc(kf jwt.Keyfunc) Option {
	return func(v *VerifierJWT) {
		v.jwks = kf
	}
}

// NewJWTVerifier создает проверяющего. Пустой jwksURL отключает асимметричные токены,
// пустой secret отключает HS256.
func NewJWTVerifier(secret, jwksURL, audience string, opts ...Option) (*VerifierJWT, error) {
	v := &VerifierJWT{secret: []byte(secret)}
	for _, opt := range opts {
		opt(v)
	}

	if v.jwks == nil && jwksURL != "" {
		k, err := keyfunc.NewDefault([]string{jwksURL})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCreateJWKS, err)
		}
		v.jwks = k.Keyfunc
	}

	if len(v.secret) > 0 {
		v.methods = append(v.methods, jwt.SigningMethodHS256.Alg())
	}
	if v.jwks != nil {
		v.methods = append(v.methods,
			jwt.SigningMethodRS256.Alg(),
			jwt.SigningMethodES256.Alg(),
		)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
	}
	if audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(audience))
	}
	v.parser = jwt.NewParser(parserOpts...)

	return v, nil
}

var _ services.TokenVerifier = (*VerifierJWT)(nil)

func (v *VerifierJWT) keyFor(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if len(v.secret) == 0 {
			return nil, ErrNoVerifierKey
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA, *jwt.SigningMethodECDSA:
		if v.jwks == nil {
			return nil, ErrNoVerifierKey
		}
		return v.jwks(token)
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
	}
}

// Verify проверяет подпись, срок действия и аудиторию токена и возвращает вызывающего.
func (v *VerifierJWT) Verify(ctx context.Context, tokenString string) (*entities.Principal, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))

	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, v.keyFor)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxVerifying, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, msgErrParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifying, services.ErrInvalidJWTToken)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%s: %w", errCtxVerifying, services.ErrInvalidJWTToken)
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		log.Debug(ctx, "subject claim is not a uuid", zap.String("sub", claims.Subject))
		return nil, fmt.Errorf("%s: %w", errCtxVerifying, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenVerified, zap.String("userID", claims.Subject))
	return &entities.Principal{UserID: claims.Subject, Email: claims.Email}, nil
}
