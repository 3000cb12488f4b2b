package auth

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/reconnect-app/reconnect-backend/internal/auth/identitytoolkit"
)

// Principal is an authenticated identity-provider account.
type Principal struct {
	UID         string
	Email       string
	DisplayName string
	IDToken     string
}

// IdentityProvider is the credential-management boundary. Provider errors
// (wrong password, email in use, weak password) pass through untranslated.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*Principal, error)
	CreateAccount(ctx context.Context, email, password string) (*Principal, error)
	UpdateDisplayName(ctx context.Context, uid, name string) error
	UpdatePassword(ctx context.Context, uid, password string) error
	SendPasswordReset(ctx context.Context, email string) error
	RevokeSessions(ctx context.Context, uid string) error
}

// firebaseIdentity fronts Firebase Auth through two clients: the Admin SDK
// for account management and the Identity Toolkit REST API for password
// sign-in, which the Admin SDK does not expose.
type firebaseIdentity struct {
	admin *fbauth.Client
	rest  *identitytoolkit.Client
}

func NewFirebaseIdentity(admin *fbauth.Client, rest *identitytoolkit.Client) IdentityProvider {
	return &firebaseIdentity{admin: admin, rest: rest}
}

func (f *firebaseIdentity) SignIn(ctx context.Context, email, password string) (*Principal, error) {
	resp, err := f.rest.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &Principal{
		UID:         resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		IDToken:     resp.IDToken,
	}, nil
}

func (f *firebaseIdentity) CreateAccount(ctx context.Context, email, password string) (*Principal, error) {
	params := (&fbauth.UserToCreate{}).Email(email).Password(password)
	record, err := f.admin.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &Principal{UID: record.UID, Email: email}, nil
}

func (f *firebaseIdentity) UpdateDisplayName(ctx context.Context, uid, name string) error {
	params := (&fbauth.UserToUpdate{}).DisplayName(name)
	if _, err := f.admin.UpdateUser(ctx, uid, params); err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	return nil
}

func (f *firebaseIdentity) UpdatePassword(ctx context.Context, uid, password string) error {
	params := (&fbauth.UserToUpdate{}).Password(password)
	if _, err := f.admin.UpdateUser(ctx, uid, params); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (f *firebaseIdentity) SendPasswordReset(ctx context.Context, email string) error {
	return f.rest.SendPasswordResetEmail(ctx, email)
}

func (f *firebaseIdentity) RevokeSessions(ctx context.Context, uid string) error {
	if err := f.admin.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}
