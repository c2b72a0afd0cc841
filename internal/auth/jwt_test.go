// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/reviewboard/internal/config"
	"github.com/carterperez-dev/reviewboard/internal/core"
)

func newTestManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	cfg := config.JWTConfig{
		PrivateKeyPath:    filepath.Join(dir, "private.pem"),
		PublicKeyPath:     filepath.Join(dir, "public.pem"),
		AccessTokenExpire: expire,
		Issuer:            "reviewboard-test",
		Audience:          "reviewboard-test-api",
	}

	require.NoError(t, GenerateKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath))

	manager, err := NewJWTManager(cfg)
	require.NoError(t, err)
	return manager
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	identity := &Identity{
		ID:        "user-123",
		Username:  "alice",
		Role:      "moderator",
		Superuser: false,
	}

	token, err := manager.IssueAccessToken(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
	assert.False(t, claims.Superuser)
}

func TestVerifyCarriesSuperuserFlag(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.IssueAccessToken(&Identity{
		ID:        "root-1",
		Username:  "root",
		Role:      "user",
		Superuser: true,
	})
	require.NoError(t, err)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, claims.Superuser)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := newTestManager(t, -time.Minute)

	token, err := manager.IssueAccessToken(&Identity{
		ID:       "user-1",
		Username: "old",
		Role:     "user",
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	issuing := newTestManager(t, time.Hour)
	verifying := newTestManager(t, time.Hour)

	token, err := issuing.IssueAccessToken(&Identity{
		ID:       "user-1",
		Username: "mallory",
		Role:     "user",
	})
	require.NoError(t, err)

	_, err = verifying.VerifyAccessToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	_, err := manager.VerifyAccessToken(context.Background(), "not.a.token")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}
