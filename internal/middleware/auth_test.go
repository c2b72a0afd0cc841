// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/reviewboard/internal/core"
	"github.com/carterperez-dev/reviewboard/internal/policy"
)

type fakeVerifier struct {
	claims map[string]*AccessTokenClaims
}

func (f *fakeVerifier) VerifyAccessToken(
	_ context.Context,
	token string,
) (*AccessTokenClaims, error) {
	if claims, ok := f.claims[token]; ok {
		return claims, nil
	}
	return nil, core.ErrTokenInvalid
}

func newVerifier() *fakeVerifier {
	return &fakeVerifier{claims: map[string]*AccessTokenClaims{
		"good-token": {
			UserID:   "u1",
			Username: "alice",
			Role:     "moderator",
		},
	}}
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic dXNlcg==", ""},
		{"Bearer", ""},
	}

	for _, c := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if c.header != "" {
			r.Header.Set("Authorization", c.header)
		}
		assert.Equal(t, c.want, ExtractToken(r), "header %q", c.header)
	}
}

func TestAuthenticatorRejectsMissingToken(t *testing.T) {
	handler := Authenticator(newVerifier())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorRejectsBadToken(t *testing.T) {
	handler := Authenticator(newVerifier())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer forged")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorPopulatesActor(t *testing.T) {
	var actor policy.Actor
	handler := Authenticator(newVerifier())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor = GetActor(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer good-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", actor.ID)
	assert.Equal(t, policy.RoleModerator, actor.Role)
	assert.True(t, actor.Authenticated)
}

func TestOptionalAuthPassesAnonymousThrough(t *testing.T) {
	var actor policy.Actor
	handler := OptionalAuth(newVerifier())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor = GetActor(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, actor.Authenticated)
	assert.Equal(t, policy.PrivilegeAnonymous, actor.Privilege())
}

func TestOptionalAuthStillRejectsBadToken(t *testing.T) {
	handler := OptionalAuth(newVerifier())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer expired-junk")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*AccessTokenClaims{
		"admin-token": {UserID: "a1", Username: "boss", Role: "admin"},
		"user-token":  {UserID: "u1", Username: "pleb", Role: "user"},
	}}

	handler := Authenticator(verifier)(RequireAdmin(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

	cases := []struct {
		token string
		want  int
	}{
		{"admin-token", http.StatusOK},
		{"user-token", http.StatusForbidden},
	}
	for _, c := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+c.token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, c.want, rec.Code, c.token)
	}
}
