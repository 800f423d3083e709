package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Provider verifies credentials against an identity store.
type Provider interface {
	// SignInWithPassword returns the admin identified by identifier when
	// secret matches. Failures wrap ErrInvalidCredentials or ErrAccountInactive.
	SignInWithPassword(ctx context.Context, identifier, secret string) (types.AdminUser, error)

	// SignOut ends the provider side of the session for u.
	SignOut(ctx context.Context, u types.AdminUser) error
}

// CredentialStore looks admins up by email. *resource.Admins implements it.
type CredentialStore interface {
	Credentials(ctx context.Context, email string) (types.AdminUser, string, bool, error)
	MarkLogin(ctx context.Context, id string) error
}

// LocalProvider checks bcrypt password hashes stored with the admin profiles.
type LocalProvider struct {
	store  CredentialStore
	logger *slog.Logger
}

var _ Provider = (*LocalProvider)(nil)

// NewLocalProvider creates a provider backed by store.
func NewLocalProvider(store CredentialStore, logger *slog.Logger) *LocalProvider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LocalProvider{store: store, logger: logger}
}

// SignInWithPassword verifies the password of the admin registered under
// the email identifier. Unknown emails, accounts without a password, and
// wrong passwords all report ErrInvalidCredentials.
func (p *LocalProvider) SignInWithPassword(ctx context.Context, identifier, secret string) (types.AdminUser, error) {
	u, hash, found, err := p.store.Credentials(ctx, identifier)
	if err != nil {
		return types.AdminUser{}, err
	}
	if !found || hash == "" {
		return types.AdminUser{}, types.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return types.AdminUser{}, types.ErrInvalidCredentials
	}
	if u.Status != types.StatusActive {
		return types.AdminUser{}, types.ErrAccountInactive
	}
	if err := p.store.MarkLogin(ctx, u.ID); err != nil {
		p.logger.Warn("stamping last login failed", slog.String("admin", u.ID), slog.Any("error", err))
	}
	return u, nil
}

// SignOut is a no-op; local sessions hold no provider state.
func (p *LocalProvider) SignOut(context.Context, types.AdminUser) error { return nil }
