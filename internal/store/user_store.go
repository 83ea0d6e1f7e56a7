package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

// UserStore holds locally registered accounts (the legacy local-auth path).
type UserStore interface {
	// Insert stores a new user. Reusing an email fails with
	// ErrEmailAlreadyRegistered.
	Insert(ctx context.Context, user *model.User) error
	// GetByEmail returns the user or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type userStore struct {
	store *Store
}

func (u *userStore) Insert(ctx context.Context, user *model.User) error {
	err := u.store.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
		return apperrors.ErrEmailAlreadyRegistered
	}
	return err
}

func (u *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := u.store.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
