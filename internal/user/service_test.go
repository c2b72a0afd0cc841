// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/reviewboard/internal/core"
)

type fakeRepo struct {
	users map[string]*User // keyed by ID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return core.ErrDuplicateKey
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetByUsername(
	_ context.Context,
	username string,
) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := f.users[u.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) SetConfirmationCode(
	_ context.Context,
	id, codeHash string,
) error {
	u, ok := f.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.ConfirmationCodeHash = &codeHash
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, username string) error {
	for id, u := range f.users {
		if u.Username == username {
			delete(f.users, id)
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeRepo) List(
	_ context.Context,
	_ ListUsersParams,
) ([]User, int, error) {
	var out []User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, slog.Default()), repo
}

func TestAdminCreateDefaultsToUserRole(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", resp.Role)

	stored, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)

	// the throwaway credential is hashed, never stored raw
	require.NotNil(t, stored.PasswordHash)
	assert.Contains(t, *stored.PasswordHash, "$argon2id$")
}

func TestAdminCreateWithExplicitRole(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     "moderator",
	})
	require.NoError(t, err)
	assert.Equal(t, "moderator", resp.Role)
}

func TestSignupCreateHasNoCredential(t *testing.T) {
	svc, repo := newTestService()

	identity, err := svc.Create(
		context.Background(), "selfserve", "self@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user", identity.Role)

	stored := repo.users[identity.ID]
	assert.Nil(t, stored.PasswordHash)
}

func TestUpdateUserCanChangeRole(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
	})
	require.NoError(t, err)

	role := "admin"
	resp, err := svc.UpdateUser(context.Background(), "bob",
		UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
}

func TestUpdateMeKeepsRoleAndOtherFields(t *testing.T) {
	svc, repo := newTestService()

	identity, err := svc.Create(
		context.Background(), "carol", "carol@example.com")
	require.NoError(t, err)

	bio := "I review things."
	resp, err := svc.UpdateMe(context.Background(), identity.ID,
		UpdateMeRequest{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "I review things.", resp.Bio)
	assert.Equal(t, "carol@example.com", resp.Email)
	assert.Equal(t, "user", repo.users[identity.ID].Role)
}

func TestSetConfirmationCodeRoundTrip(t *testing.T) {
	svc, _ := newTestService()

	identity, err := svc.Create(
		context.Background(), "dave", "dave@example.com")
	require.NoError(t, err)

	hash := core.HashToken("ABCD2345")
	require.NoError(t, svc.SetConfirmationCode(
		context.Background(), identity.ID, hash))

	reloaded, err := svc.GetByUsername(context.Background(), "dave")
	require.NoError(t, err)
	assert.Equal(t, hash, reloaded.ConfirmationCodeHash)
}

func TestListUsersParamsNormalize(t *testing.T) {
	p := ListUsersParams{Page: -3, PageSize: 500}
	p.Normalize()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)
	assert.Equal(t, 0, p.Offset())
}
