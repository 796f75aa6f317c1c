// Package users provides database operations for user management.
//
// Passwords arrive here already hashed; the repository never sees plain text.
//
// # Usage
//
//	repo := users.NewRepository(db.WithContext(ctx))
//	user, err := repo.GetByID(id)
package users

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookexchange/internal/apperror"
	"github.com/mrlokans/bookexchange/internal/entities"
)

// Patch carries the mutable user fields. PasswordHash is set by the caller
// after hashing; Role replaces the whole set when non-nil.
type Patch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
	Role         []string
}

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every user, oldest first.
func (r *Repository) List() ([]entities.User, error) {
	var users []entities.User
	if err := r.db.Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("user %s: %w", id, apperror.FromGorm(err))
	}
	return &user, nil
}

// ByIDs loads several users in one query, keyed by ID. IDs with no stored
// row are absent from the map.
func (r *Repository) ByIDs(ids []uuid.UUID) (map[uuid.UUID]entities.User, error) {
	found := make(map[uuid.UUID]entities.User, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var rows []entities.User
	if err := r.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get users by id: %w", err)
	}
	for _, row := range rows {
		found[row.ID] = row
	}
	return found, nil
}

// Exists reports whether a user with the given ID is stored.
func (r *Repository) Exists(id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&entities.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user %s: %w", id, err)
	}
	return count > 0, nil
}

// Create persists a new user.
func (r *Repository) Create(user *entities.User) error {
	user.CreatedAt = time.Now().UTC()
	user.Role = entities.NormalizeRoles(user.Role)
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", apperror.FromGorm(err))
	}
	return nil
}

// Update applies a patch to an existing user and returns the stored row.
func (r *Repository) Update(id uuid.UUID, patch Patch) (*entities.User, error) {
	user, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if v := patch.FirstName; v != nil && *v != "" {
		user.FirstName = v
	}
	if v := patch.LastName; v != nil && *v != "" {
		user.LastName = v
	}
	if v := patch.Email; v != nil && *v != "" {
		user.Email = *v
	}
	if v := patch.PasswordHash; v != nil && *v != "" {
		user.Password = *v
	}
	if patch.Role != nil {
		user.Role = entities.NormalizeRoles(patch.Role)
	}

	if err := r.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, apperror.FromGorm(err))
	}
	return user, nil
}

// Delete removes a user along with their reviews and favourite rows.
func (r *Repository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&entities.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, apperror.FromGorm(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}
