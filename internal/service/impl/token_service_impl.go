package impl

import (
	"context"
	"fmt"
	"time"

	"clubhub/internal/domain"
	"clubhub/internal/observability/metrics"
	"clubhub/internal/observability/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenConfig struct {
	Issuer     string        // e.g. "clubhub"
	TTL        time.Duration // 24h
	SigningKey []byte        // HS256 secret
}

// Claims carry userId and type, plus username for clubs or email for students.
type Claims struct {
	UserID   string          `json:"userId"`
	Type     domain.UserType `json:"type"`
	Username string          `json:"username,omitempty"`
	Email    string          `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type TokenServiceImpl struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenServiceHS256(cfg TokenConfig) (*TokenServiceImpl, error) {
	if len(cfg.SigningKey) == 0 {
		return nil, ErrEmptySecret
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &TokenServiceImpl{cfg: cfg, now: time.Now}, nil
}

func (t *TokenServiceImpl) Issue(ctx context.Context, acc domain.Account) (string, error) {
	result := metrics.ResultSuccess
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues(result).Inc()
	}()

	now := t.now().UTC()
	base := acc.Base()
	claims := Claims{
		UserID: base.ID,
		Type:   acc.Kind(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   base.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		},
	}
	switch a := acc.(type) {
	case *domain.Club:
		claims.Username = a.Username
	case *domain.Student:
		claims.Email = a.Email
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.SigningKey)
	if err != nil {
		result = metrics.ResultFailure
		return "", err
	}
	middleware.Logger(ctx).Debug("issued token", "user_id", base.ID, "type", acc.Kind(), "jti", claims.ID)
	return signed, nil
}

func (t *TokenServiceImpl) Parse(_ context.Context, token string) (domain.Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.cfg.SigningKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" || !claims.Type.Valid() {
		return domain.Principal{}, fmt.Errorf("%w: incomplete claims", ErrInvalidToken)
	}
	return domain.Principal{
		UserID:   claims.UserID,
		Type:     claims.Type,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
