// Package authors provides database operations for author management.
//
// # Usage
//
//	repo := authors.NewRepository(db.WithContext(ctx))
//	author, err := repo.GetByID(id)
package authors

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookexchange/internal/apperror"
	"github.com/mrlokans/bookexchange/internal/entities"
)

// Patch carries the mutable author fields. A nil or empty value leaves the
// stored column untouched.
type Patch struct {
	FirstName   *string
	LastName    *string
	Description *string
}

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every author, oldest first.
func (r *Repository) List() ([]entities.Author, error) {
	var authors []entities.Author
	if err := r.db.Order("created_at ASC, id ASC").Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

// GetByID retrieves an author by ID.
func (r *Repository) GetByID(id uuid.UUID) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("author %s: %w", id, apperror.FromGorm(err))
	}
	return &author, nil
}

// ByIDs loads several authors in one query, keyed by ID. IDs with no stored
// author are absent from the map.
func (r *Repository) ByIDs(ids []uuid.UUID) (map[uuid.UUID]entities.Author, error) {
	found := make(map[uuid.UUID]entities.Author, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var authors []entities.Author
	if err := r.db.Where("id IN ?", ids).Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to get authors by id: %w", err)
	}
	for _, a := range authors {
		found[a.ID] = a
	}
	return found, nil
}

// Exists reports whether an author with the given ID is stored.
func (r *Repository) Exists(id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check author %s: %w", id, err)
	}
	return count > 0, nil
}

// Create persists a new author. The creation timestamp is always assigned here.
func (r *Repository) Create(author *entities.Author) error {
	author.CreatedAt = time.Now().UTC()
	if err := r.db.Create(author).Error; err != nil {
		return fmt.Errorf("failed to create author: %w", apperror.FromGorm(err))
	}
	return nil
}

// Update applies a patch to an existing author and returns the stored row.
func (r *Repository) Update(id uuid.UUID, patch Patch) (*entities.Author, error) {
	author, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if v := patch.FirstName; v != nil && *v != "" {
		author.FirstName = *v
	}
	if v := patch.LastName; v != nil && *v != "" {
		author.LastName = v
	}
	if v := patch.Description; v != nil && *v != "" {
		author.Description = v
	}

	if err := r.db.Save(author).Error; err != nil {
		return nil, fmt.Errorf("failed to update author %s: %w", id, apperror.FromGorm(err))
	}
	return author, nil
}

// Delete removes an author. Books, their reviews and every favourite row
// referencing them go with it through the ON DELETE CASCADE foreign keys.
func (r *Repository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&entities.Author{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete author %s: %w", id, apperror.FromGorm(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("author %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}
