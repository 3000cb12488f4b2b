// Package auth keeps the identity provider and the users collection in
// step: every authenticated principal has a matching users document keyed
// by its uid.
package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/reconnect-app/reconnect-backend/internal/domain"
	"github.com/reconnect-app/reconnect-backend/internal/users"
)

type Service struct {
	identity IdentityProvider
	users    *users.Repo
	log      *zap.Logger
}

func NewService(identity IdentityProvider, userRepo *users.Repo, log *zap.Logger) *Service {
	return &Service{identity: identity, users: userRepo, log: log}
}

// LoginResult pairs the profile document with the provider's session token.
type LoginResult struct {
	User    *domain.User `json:"user"`
	IDToken string       `json:"idToken"`
}

// Login authenticates and then required-reads the users document. An auth
// account without a profile document is domain.ErrProfileMissing, distinct
// from the provider's wrong-credential failures.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	p, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, p.UID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		s.log.Warn("authenticated account has no profile document", zap.String("uid", p.UID))
		return nil, domain.ErrProfileMissing
	}

	return &LoginResult{User: u, IDToken: p.IDToken}, nil
}

// SignupParams is the profile data accompanying a new account.
type SignupParams struct {
	Name         string
	Role         string
	UniversityID string
	CollegeID    string
	Phone        string
}

// CreateUser creates the provider account and writes the profile document
// under the new uid. Role defaults to "user". If the profile write fails the
// provider account is left behind; there is no compensation step.
func (s *Service) CreateUser(ctx context.Context, email, password string, params SignupParams) (*domain.User, error) {
	p, err := s.identity.CreateAccount(ctx, email, password)
	if err != nil {
		return nil, err
	}

	role := params.Role
	if role == "" {
		role = domain.RoleUser
	}

	u := domain.User{
		ID:           p.UID,
		Email:        email,
		Name:         params.Name,
		Role:         role,
		UniversityID: params.UniversityID,
		CollegeID:    params.CollegeID,
		Phone:        params.Phone,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := s.users.CreateWithID(ctx, u); err != nil {
		return nil, err
	}

	if params.Name != "" {
		if err := s.identity.UpdateDisplayName(ctx, p.UID, params.Name); err != nil {
			return nil, err
		}
	}

	return &u, nil
}

// Logout revokes the account's refresh tokens.
func (s *Service) Logout(ctx context.Context, uid string) error {
	return s.identity.RevokeSessions(ctx, uid)
}

// ChangePassword re-authenticates with the current password before applying
// the new one, so a hijacked session alone cannot rotate credentials.
func (s *Service) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	p, err := s.identity.SignIn(ctx, email, currentPassword)
	if err != nil {
		return err
	}
	return s.identity.UpdatePassword(ctx, p.UID, newPassword)
}

// ResetPassword sends the provider's password-reset email.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	return s.identity.SendPasswordReset(ctx, email)
}

// UpdateProfile merges into the users document and mirrors a name change to
// the provider's display name. Two writes, not atomic.
func (s *Service) UpdateProfile(ctx context.Context, id string, updates map[string]any) error {
	if err := s.users.Update(ctx, id, updates); err != nil {
		return err
	}

	if name, ok := updates["name"].(string); ok && name != "" {
		if err := s.identity.UpdateDisplayName(ctx, id, name); err != nil {
			return err
		}
	}
	return nil
}
