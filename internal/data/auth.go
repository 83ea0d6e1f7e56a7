package data

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/api"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

const bcryptCost = 10

// RegisterLocal stores a new account in the local cache (the legacy
// local-auth path). The email must not already be registered locally.
func (r *Repository) RegisterLocal(ctx context.Context, user *model.User, password string) error {
	if _, err := r.users.GetByEmail(ctx, user.Email); err == nil {
		return apperrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("check local account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	return r.users.Insert(ctx, user)
}

// LoginLocal authenticates against the local cache. Success sets the session
// to the matched user; any failure resets it to anonymous and returns
// ErrInvalidCredentials.
func (r *Repository) LoginLocal(ctx context.Context, email, password string) (*model.User, error) {
	user, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		r.current.Set(nil)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		r.current.Set(nil)
		return nil, apperrors.ErrInvalidCredentials
	}

	r.current.Set(user)
	return user, nil
}

// RegisterRemote creates an account on the server. It touches neither the
// local cache nor the session: the caller logs in separately.
func (r *Repository) RegisterRemote(ctx context.Context, req api.RegisterRequest) error {
	return r.remote.Register(ctx, req)
}

// LoginRemote authenticates against the server, stores the returned bearer
// token and populates the session from the remote profile. Any failure
// resets the session to anonymous.
func (r *Repository) LoginRemote(ctx context.Context, username, password string) (*model.User, error) {
	token, err := r.remote.Login(ctx, username, password)
	if err != nil {
		r.tokens.Clear()
		r.current.Set(nil)
		if he, ok := apperrors.AsHTTP(err); ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAuthenticationFailed, he.Body)
		}
		return nil, err
	}

	r.tokens.Set(token)

	user, err := r.remote.Profile(ctx)
	if err != nil {
		r.tokens.Clear()
		r.current.Set(nil)
		return nil, fmt.Errorf("fetch profile after login: %w", err)
	}

	r.current.Set(user)
	return user, nil
}

// RestoreSession repopulates the session from a persisted token, typically
// after an app restart. On failure both the token and the session are
// cleared.
func (r *Repository) RestoreSession(ctx context.Context, token string) (*model.User, error) {
	r.tokens.Set(token)

	user, err := r.remote.Profile(ctx)
	if err != nil {
		r.tokens.Clear()
		r.current.Set(nil)
		return nil, fmt.Errorf("restore session: %w", err)
	}

	r.current.Set(user)
	return user, nil
}

// Logout resets the session to anonymous and drops the bearer token. The
// cart deliberately survives: there is no multi-account isolation on device.
// Server-side revocation is best effort.
func (r *Repository) Logout(ctx context.Context) {
	if token, ok := r.tokens.Get(); ok {
		if err := r.remote.Logout(ctx, token); err != nil {
			r.log.Debug().Err(err).Msg("remote logout failed, revoking locally only")
		}
	}
	r.tokens.Clear()
	r.current.Set(nil)
}

// UpdateProfile applies profile changes on the server and refreshes the
// session cell with the updated user.
func (r *Repository) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*model.User, error) {
	user, err := r.remote.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}
	r.current.Set(user)
	return user, nil
}

// ChangePassword rotates the password on the server.
func (r *Repository) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return r.remote.ChangePassword(ctx, oldPassword, newPassword)
}
