package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/model"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginOutput struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Login exchanges credentials for a token carrying the user's role, team and
// manager. Unknown emails and wrong passwords are indistinguishable.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Find the user
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	verified, err := s.passwordHasher.Verify(input.Password, user.PasswordHash)
	if err != nil || !verified {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}

	// The plaintext is only available here, so stale cost parameters are
	// upgraded on login. A failed upgrade does not block the login.
	if s.passwordHasher.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user, input.Password)
	}

	// Generate token
	token, err := s.tokenManager.Generate(user.Principal(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &LoginOutput{
		User:  user,
		Token: token,
	}, nil
}

func (s *UserService) rehash(ctx context.Context, user *model.User, password string) {
	hash, err := s.passwordHasher.Hash(password)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to rehash password", "userID", user.ID, "error", err)
		return
	}
	previous := user.PasswordHash
	user.PasswordHash = hash
	if err := s.repo.Update(ctx, user); err != nil {
		user.PasswordHash = previous
		s.logger.WarnContext(ctx, "failed to store rehashed password", "userID", user.ID, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "password rehashed", "userID", user.ID)
}
