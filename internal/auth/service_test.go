// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/reviewboard/internal/core"
)

type fakeUsers struct {
	identities map[string]*Identity // keyed by ID
	nextID     int
	createErr  error
	codes      map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		identities: make(map[string]*Identity),
		codes:      make(map[string]string),
	}
}

func (f *fakeUsers) add(username, email string) *Identity {
	f.nextID++
	id := &Identity{
		ID:       fmt.Sprintf("id-%d", f.nextID),
		Username: username,
		Email:    email,
		Role:     "user",
	}
	f.identities[id.ID] = id
	return id
}

func (f *fakeUsers) GetByUsername(
	_ context.Context,
	username string,
) (*Identity, error) {
	for _, id := range f.identities {
		if id.Username == username {
			cp := *id
			cp.ConfirmationCodeHash = f.codes[id.ID]
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUsers) GetByEmail(
	_ context.Context,
	email string,
) (*Identity, error) {
	for _, id := range f.identities {
		if id.Email == email {
			cp := *id
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUsers) Create(
	_ context.Context,
	username, email string,
) (*Identity, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.add(username, email), nil
}

func (f *fakeUsers) SetConfirmationCode(
	_ context.Context,
	userID, codeHash string,
) error {
	if _, ok := f.identities[userID]; !ok {
		return core.ErrNotFound
	}
	f.codes[userID] = codeHash
	return nil
}

type fakeSender struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	recipient string
	username  string
	code      string
}

func (f *fakeSender) SendConfirmationCode(
	_ context.Context,
	recipient, username, code string,
) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{recipient, username, code})
	return nil
}

type fakeIssuer struct {
	err error
}

func (f *fakeIssuer) IssueAccessToken(identity *Identity) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + identity.Username, nil
}

func TestSignUpCreatesNewUser(t *testing.T) {
	users := newFakeUsers()
	sender := &fakeSender{}
	svc := NewService(users, sender, &fakeIssuer{})

	resp, err := svc.SignUp(context.Background(), SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "alice@example.com", sender.sent[0].recipient)
	assert.Len(t, sender.sent[0].code, core.ConfirmationCodeLength)

	// the stored hash matches the mailed code
	identity, err := users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, core.CompareTokenHash(
		sender.sent[0].code, identity.ConfirmationCodeHash))
}

func TestSignUpIsIdempotentForSamePair(t *testing.T) {
	users := newFakeUsers()
	sender := &fakeSender{}
	svc := NewService(users, sender, &fakeIssuer{})

	req := SignUpRequest{Username: "bob", Email: "bob@example.com"}

	_, err := svc.SignUp(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), req)
	require.NoError(t, err)

	// no second account, but a second mail with a fresh code
	assert.Len(t, users.identities, 1)
	require.Len(t, sender.sent, 2)
	assert.NotEqual(t, sender.sent[0].code, sender.sent[1].code)
}

func TestSignUpRejectsCrossedPairs(t *testing.T) {
	users := newFakeUsers()
	users.add("bob", "bob@example.com")
	users.add("carol", "carol@example.com")
	svc := NewService(users, &fakeSender{}, &fakeIssuer{})

	cases := []SignUpRequest{
		{Username: "bob", Email: "carol@example.com"},
		{Username: "bob", Email: "new@example.com"},
		{Username: "newname", Email: "bob@example.com"},
	}
	for _, req := range cases {
		_, err := svc.SignUp(context.Background(), req)
		assert.ErrorIs(t, err, ErrSignupConflict, "%+v", req)
	}
}

func TestSignUpMapsDuplicateRaceToConflict(t *testing.T) {
	users := newFakeUsers()
	users.createErr = core.ErrDuplicateKey
	svc := NewService(users, &fakeSender{}, &fakeIssuer{})

	_, err := svc.SignUp(context.Background(), SignUpRequest{
		Username: "dave",
		Email:    "dave@example.com",
	})
	assert.ErrorIs(t, err, ErrSignupConflict)
}

func TestSignUpPropagatesMailFailure(t *testing.T) {
	users := newFakeUsers()
	sender := &fakeSender{err: errors.New("smtp connection refused")}
	svc := NewService(users, sender, &fakeIssuer{})

	_, err := svc.SignUp(context.Background(), SignUpRequest{
		Username: "erin",
		Email:    "erin@example.com",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSignupConflict)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	svc := NewService(newFakeUsers(), &fakeSender{}, &fakeIssuer{})

	_, err := svc.IssueToken(context.Background(), TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "ABCD2345",
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestIssueTokenWrongCode(t *testing.T) {
	users := newFakeUsers()
	id := users.add("frank", "frank@example.com")
	users.codes[id.ID] = core.HashToken("RIGHTCOD")
	svc := NewService(users, &fakeSender{}, &fakeIssuer{})

	_, err := svc.IssueToken(context.Background(), TokenRequest{
		Username:         "frank",
		ConfirmationCode: "WRONGCOD",
	})
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestIssueTokenWithoutSignup(t *testing.T) {
	users := newFakeUsers()
	users.add("grace", "grace@example.com")
	svc := NewService(users, &fakeSender{}, &fakeIssuer{})

	// no confirmation code was ever issued for this account
	_, err := svc.IssueToken(context.Background(), TokenRequest{
		Username:         "grace",
		ConfirmationCode: "ABCD2345",
	})
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestIssueTokenSuccessAndReuse(t *testing.T) {
	users := newFakeUsers()
	id := users.add("heidi", "heidi@example.com")
	users.codes[id.ID] = core.HashToken("GOODCODE")
	svc := NewService(users, &fakeSender{}, &fakeIssuer{})

	req := TokenRequest{Username: "heidi", ConfirmationCode: "GOODCODE"}

	resp, err := svc.IssueToken(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "token-for-heidi", resp.Token)

	// the code stays valid until the next signup replaces it
	_, err = svc.IssueToken(context.Background(), req)
	require.NoError(t, err)
}
