// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carterperez-dev/reviewboard/internal/auth"
	"github.com/carterperez-dev/reviewboard/internal/core"
	"github.com/carterperez-dev/reviewboard/internal/policy"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateUser provisions an account on behalf of an administrator. The
// account gets a random throwaway credential; the owner authenticates
// through the confirmation-code flow like everyone else.
func (s *Service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*UserResponse, error) {
	role := req.Role
	if role == "" {
		role = string(policy.RoleUser)
	}

	credential, err := core.GenerateSecureToken(24)
	if err != nil {
		return nil, fmt.Errorf("generate credential: %w", err)
	}

	passwordHash, err := core.HashPassword(credential)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	u := &User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Bio:          req.Bio,
		Role:         role,
		PasswordHash: &passwordHash,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user created by admin",
		"username", u.Username,
		"role", u.Role,
	)

	resp := ToUserResponse(u)
	return &resp, nil
}

func (s *Service) GetUser(
	ctx context.Context,
	username string,
) (*UserResponse, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(u)
	return &resp, nil
}

func (s *Service) UpdateUser(
	ctx context.Context,
	username string,
	req UpdateUserRequest,
) (*UserResponse, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Role != nil {
		u.Role = *req.Role
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	resp := ToUserResponse(u)
	return &resp, nil
}

func (s *Service) DeleteUser(ctx context.Context, username string) error {
	return s.repo.Delete(ctx, username)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]UserResponse, int, error) {
	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponseList(users), total, nil
}

func (s *Service) GetMe(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(u)
	return &resp, nil
}

// UpdateMe applies self-service profile edits. Role is not part of the
// request type, so privilege escalation is impossible here.
func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateMeRequest,
) (*UserResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	resp := ToUserResponse(u)
	return &resp, nil
}

// GetByUsername implements auth.UserProvider.
func (s *Service) GetByUsername(
	ctx context.Context,
	username string,
) (*auth.Identity, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return toIdentity(u), nil
}

// GetByEmail implements auth.UserProvider.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.Identity, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toIdentity(u), nil
}

// Create implements auth.UserProvider for self-service signup.
func (s *Service) Create(
	ctx context.Context,
	username, email string,
) (*auth.Identity, error) {
	u := &User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Role:     string(policy.RoleUser),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", "username", u.Username)

	return toIdentity(u), nil
}

// SetConfirmationCode implements auth.UserProvider.
func (s *Service) SetConfirmationCode(
	ctx context.Context,
	userID, codeHash string,
) error {
	return s.repo.SetConfirmationCode(ctx, userID, codeHash)
}

func toIdentity(u *User) *auth.Identity {
	identity := &auth.Identity{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Superuser: u.IsSuperuser,
	}
	if u.ConfirmationCodeHash != nil {
		identity.ConfirmationCodeHash = *u.ConfirmationCodeHash
	}
	return identity
}

var _ auth.UserProvider = (*Service)(nil)
