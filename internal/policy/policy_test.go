// AngelaMos | 2026
// policy_test.go

package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/reviewboard/internal/core"
)

func anon() Actor {
	return Anonymous()
}

func regular() Actor {
	return Actor{ID: "u1", Username: "reader", Role: RoleUser, Authenticated: true}
}

func moderator() Actor {
	return Actor{ID: "m1", Username: "mod", Role: RoleModerator, Authenticated: true}
}

func admin() Actor {
	return Actor{ID: "a1", Username: "boss", Role: RoleAdmin, Authenticated: true}
}

func superuser() Actor {
	return Actor{
		ID:            "s1",
		Username:      "root",
		Role:          RoleUser,
		Superuser:     true,
		Authenticated: true,
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"user", "moderator", "admin"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}

	_, err := ParseRole("owner")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestPrivilegeOrdering(t *testing.T) {
	assert.Equal(t, PrivilegeAnonymous, anon().Privilege())
	assert.Equal(t, PrivilegeUser, regular().Privilege())
	assert.Equal(t, PrivilegeModerator, moderator().Privilege())
	assert.Equal(t, PrivilegeAdmin, admin().Privilege())

	// a superuser is an admin no matter what role the record carries
	assert.Equal(t, PrivilegeAdmin, superuser().Privilege())
}

func TestReadOnlyOrAuthenticated(t *testing.T) {
	assert.NoError(t, ReadOnlyOrAuthenticated(anon(), true))
	assert.NoError(t, ReadOnlyOrAuthenticated(regular(), true))
	assert.NoError(t, ReadOnlyOrAuthenticated(regular(), false))

	err := ReadOnlyOrAuthenticated(anon(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestAdminOnly(t *testing.T) {
	assert.NoError(t, AdminOnly(admin()))
	assert.NoError(t, AdminOnly(superuser()))

	err := AdminOnly(anon())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	for _, actor := range []Actor{regular(), moderator()} {
		err := AdminOnly(actor)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrForbidden)
	}
}

func TestAdminOrReadOnly(t *testing.T) {
	// safe operations pass for everyone, including anonymous
	for _, actor := range []Actor{anon(), regular(), moderator(), admin()} {
		assert.NoError(t, AdminOrReadOnly(actor, true))
	}

	assert.NoError(t, AdminOrReadOnly(admin(), false))
	assert.NoError(t, AdminOrReadOnly(superuser(), false))

	err := AdminOrReadOnly(anon(), false)
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	err = AdminOrReadOnly(regular(), false)
	assert.ErrorIs(t, err, core.ErrForbidden)

	err = AdminOrReadOnly(moderator(), false)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestAuthorOrElevated(t *testing.T) {
	author := regular()

	assert.NoError(t, AuthorOrElevated(author, author.ID))
	assert.NoError(t, AuthorOrElevated(moderator(), author.ID))
	assert.NoError(t, AuthorOrElevated(admin(), author.ID))
	assert.NoError(t, AuthorOrElevated(superuser(), author.ID))

	other := Actor{ID: "u2", Role: RoleUser, Authenticated: true}
	err := AuthorOrElevated(other, author.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.False(t, errors.Is(err, core.ErrUnauthorized))

	err = AuthorOrElevated(anon(), author.ID)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}
