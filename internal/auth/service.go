// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/reviewboard/internal/core"
)

var (
	ErrSignupConflict = errors.New("username or email already registered")
	ErrInvalidCode    = errors.New("invalid confirmation code")
)

// Identity is the slice of a user record the auth flow needs.
type Identity struct {
	ID                   string
	Username             string
	Email                string
	Role                 string
	Superuser            bool
	ConfirmationCodeHash string
}

type UserProvider interface {
	GetByUsername(ctx context.Context, username string) (*Identity, error)
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	Create(ctx context.Context, username, email string) (*Identity, error)
	SetConfirmationCode(ctx context.Context, userID, codeHash string) error
}

type CodeSender interface {
	SendConfirmationCode(
		ctx context.Context,
		recipient, username, code string,
	) error
}

type TokenIssuer interface {
	IssueAccessToken(identity *Identity) (string, error)
}

// Service orchestrates signup and token issuance. The mail transport and
// the token generator are injected so the flow is testable without either.
type Service struct {
	users  UserProvider
	sender CodeSender
	issuer TokenIssuer
}

func NewService(
	users UserProvider,
	sender CodeSender,
	issuer TokenIssuer,
) *Service {
	return &Service{
		users:  users,
		sender: sender,
		issuer: issuer,
	}
}

// SignUp registers a new identity or re-registers an existing one.
// Re-registration with the same username and email is idempotent and
// regenerates the confirmation code; a username or email that matches a
// different existing account is a conflict.
func (s *Service) SignUp(
	ctx context.Context,
	req SignUpRequest,
) (*SignUpResponse, error) {
	byUsername, err := s.lookup(func() (*Identity, error) {
		return s.users.GetByUsername(ctx, req.Username)
	})
	if err != nil {
		return nil, err
	}

	byEmail, err := s.lookup(func() (*Identity, error) {
		return s.users.GetByEmail(ctx, req.Email)
	})
	if err != nil {
		return nil, err
	}

	var identity *Identity
	switch {
	case byUsername == nil && byEmail == nil:
		identity, err = s.users.Create(ctx, req.Username, req.Email)
		if err != nil {
			if errors.Is(err, core.ErrDuplicateKey) {
				// lost a race with a concurrent signup
				return nil, ErrSignupConflict
			}
			return nil, fmt.Errorf("create user: %w", err)
		}
	case byUsername != nil && byEmail != nil && byUsername.ID == byEmail.ID:
		identity = byUsername
	default:
		return nil, ErrSignupConflict
	}

	code, err := core.GenerateConfirmationCode()
	if err != nil {
		return nil, fmt.Errorf("generate confirmation code: %w", err)
	}

	codeHash := core.HashToken(code)
	if err := s.users.SetConfirmationCode(ctx, identity.ID, codeHash); err != nil {
		return nil, fmt.Errorf("store confirmation code: %w", err)
	}

	err = s.sender.SendConfirmationCode(ctx, identity.Email, identity.Username, code)
	if err != nil {
		return nil, fmt.Errorf("send confirmation code: %w", err)
	}

	return &SignUpResponse{
		Username: identity.Username,
		Email:    identity.Email,
	}, nil
}

// IssueToken exchanges a confirmation code for a bearer access token.
// The code stays valid afterwards; a fresh signup replaces it.
func (s *Service) IssueToken(
	ctx context.Context,
	req TokenRequest,
) (*TokenResponse, error) {
	identity, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	if identity.ConfirmationCodeHash == "" ||
		!core.CompareTokenHash(req.ConfirmationCode, identity.ConfirmationCodeHash) {
		return nil, ErrInvalidCode
	}

	token, err := s.issuer.IssueAccessToken(identity)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &TokenResponse{Token: token}, nil
}

func (s *Service) lookup(
	get func() (*Identity, error),
) (*Identity, error) {
	identity, err := get()
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return identity, nil
}
