// Package reviews provides database operations for book reviews.
package reviews

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookexchange/internal/apperror"
	"github.com/mrlokans/bookexchange/internal/entities"
)

// Patch carries the mutable review fields.
type Patch struct {
	Title       *string
	Description *string
}

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every review, oldest first.
func (r *Repository) List() ([]entities.Review, error) {
	var reviews []entities.Review
	if err := r.db.Order("created_at ASC, id ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// GetByID retrieves a review by ID.
func (r *Repository) GetByID(id uuid.UUID) (*entities.Review, error) {
	var review entities.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("review %s: %w", id, apperror.FromGorm(err))
	}
	return &review, nil
}

// ByBook returns the reviews of one book.
func (r *Repository) ByBook(bookID uuid.UUID) ([]entities.Review, error) {
	grouped, err := r.ByBooks([]uuid.UUID{bookID})
	if err != nil {
		return nil, err
	}
	return grouped[bookID], nil
}

// ByBooks returns the reviews of several books, grouped by book ID.
func (r *Repository) ByBooks(bookIDs []uuid.UUID) (map[uuid.UUID][]entities.Review, error) {
	return r.groupedBy("book_id", bookIDs, func(rv entities.Review) uuid.UUID { return rv.BookID })
}

// ByUsers returns the reviews written by several users, grouped by user ID.
func (r *Repository) ByUsers(userIDs []uuid.UUID) (map[uuid.UUID][]entities.Review, error) {
	return r.groupedBy("user_id", userIDs, func(rv entities.Review) uuid.UUID { return rv.UserID })
}

func (r *Repository) groupedBy(column string, ids []uuid.UUID, key func(entities.Review) uuid.UUID) (map[uuid.UUID][]entities.Review, error) {
	grouped := make(map[uuid.UUID][]entities.Review, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}

	var reviews []entities.Review
	err := r.db.Where(column+" IN ?", ids).Order("created_at ASC, id ASC").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews by %s: %w", column, err)
	}
	for _, rv := range reviews {
		k := key(rv)
		grouped[k] = append(grouped[k], rv)
	}
	return grouped, nil
}

// Create persists a new review. User and book existence is checked by the
// caller; the foreign keys back that check up.
func (r *Repository) Create(review *entities.Review) error {
	review.CreatedAt = time.Now().UTC()
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", apperror.FromGorm(err))
	}
	return nil
}

// Update applies a patch to an existing review and returns the stored row.
func (r *Repository) Update(id uuid.UUID, patch Patch) (*entities.Review, error) {
	review, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if v := patch.Title; v != nil && *v != "" {
		review.Title = *v
	}
	if v := patch.Description; v != nil && *v != "" {
		review.Description = v
	}

	if err := r.db.Save(review).Error; err != nil {
		return nil, fmt.Errorf("failed to update review %s: %w", id, apperror.FromGorm(err))
	}
	return review, nil
}

// Delete removes a review.
func (r *Repository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&entities.Review{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, apperror.FromGorm(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}
