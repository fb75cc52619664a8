package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Areandra/Kelvin/pkg/db/models"
)

// CredentialStore resolves login accounts. The gorm-backed implementation
// below serves the single provisioned admin; swapping in a multi-user store
// later only requires satisfying this interface.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Repository is the gorm-backed CredentialStore.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail loads the user with the given email, case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		First(&user, "lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertUser inserts or updates the account row keyed by email.
func (r *Repository) UpsertUser(ctx context.Context, user *models.User) error {
	var existing models.User
	err := r.db.WithContext(ctx).
		First(&existing, "lower(email) = ?", strings.ToLower(user.Email)).Error
	if err == nil {
		existing.FullName = user.FullName
		existing.PasswordHash = user.PasswordHash
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(user).Error
}
