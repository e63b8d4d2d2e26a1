package impl

import (
	"context"
	"testing"
	"time"

	"clubhub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokens(t *testing.T, now time.Time) *TokenServiceImpl {
	t.Helper()
	ts, err := NewTokenServiceHS256(TokenConfig{Issuer: "clubhub", TTL: 24 * time.Hour, SigningKey: []byte("test-secret")})
	require.NoError(t, err)
	ts.now = func() time.Time { return now }
	return ts
}

func TestTokenService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ts := newTokens(t, now)
	ctx := context.Background()

	club := &domain.Club{Credentials: domain.Credentials{ID: "c1", Email: "emcc@ouce.in"}, Username: "EMCC"}
	tok, err := ts.Issue(ctx, club)
	require.NoError(t, err)

	p, err := ts.Parse(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal{UserID: "c1", Type: domain.UserTypeClub, Username: "EMCC"}, p)

	student := &domain.Student{Credentials: domain.Credentials{ID: "s1", Email: "asha@ouce.in"}}
	tok, err = ts.Issue(ctx, student)
	require.NoError(t, err)
	p, err = ts.Parse(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal{UserID: "s1", Type: domain.UserTypeStudent, Email: "asha@ouce.in"}, p)
}

func TestTokenService_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ts := newTokens(t, now)
	tok, err := ts.Issue(context.Background(), &domain.Club{Credentials: domain.Credentials{ID: "c1"}, Username: "EMCC"})
	require.NoError(t, err)

	ts.now = func() time.Time { return now.Add(23 * time.Hour) }
	_, err = ts.Parse(context.Background(), tok)
	require.NoError(t, err)

	ts.now = func() time.Time { return now.Add(25 * time.Hour) }
	_, err = ts.Parse(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsForeignTokens(t *testing.T) {
	now := time.Now()
	ts := newTokens(t, now)
	ctx := context.Background()

	other, err := NewTokenServiceHS256(TokenConfig{Issuer: "clubhub", SigningKey: []byte("another-secret")})
	require.NoError(t, err)
	foreign, err := other.Issue(ctx, &domain.Club{Credentials: domain.Credentials{ID: "c1"}})
	require.NoError(t, err)
	_, err = ts.Parse(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "c1",
		Type:   domain.UserTypeClub,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "clubhub",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ts.Parse(ctx, unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ts.Parse(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenServiceHS256_RequiresKey(t *testing.T) {
	_, err := NewTokenServiceHS256(TokenConfig{})
	assert.ErrorIs(t, err, ErrEmptySecret)
}
