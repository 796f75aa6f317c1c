// Package books provides database operations for book management.
//
// Related collections are loaded through explicit query functions
// (ByAuthor, ByAuthors) rather than preloaded associations, so every
// query a controller issues is visible at the call site.
//
// # Usage
//
//	repo := books.NewRepository(db.WithContext(ctx))
//	book, err := repo.GetByID(id)
//	byAuthor, err := repo.ByAuthors([]uuid.UUID{authorID})
package books

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookexchange/internal/apperror"
	"github.com/mrlokans/bookexchange/internal/entities"
)

// Patch carries the mutable book fields. A nil value, or an empty string,
// leaves the stored column untouched.
type Patch struct {
	Title       *string
	Volume      *string
	ReleaseYear *int
	Description *string
	Genre       *string
	Series      *string
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every book, oldest first.
func (r *Repository) List() ([]entities.Book, error) {
	var books []entities.Book
	if err := r.db.Order("created_at ASC, id ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// GetByID retrieves a book by ID.
func (r *Repository) GetByID(id uuid.UUID) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("book %s: %w", id, apperror.FromGorm(err))
	}
	return &book, nil
}

// ByIDs loads several books in one query, keyed by ID. IDs with no stored
// row are absent from the map.
func (r *Repository) ByIDs(ids []uuid.UUID) (map[uuid.UUID]entities.Book, error) {
	found := make(map[uuid.UUID]entities.Book, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var rows []entities.Book
	if err := r.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get books by id: %w", err)
	}
	for _, row := range rows {
		found[row.ID] = row
	}
	return found, nil
}

// Exists reports whether a book with the given ID is stored.
func (r *Repository) Exists(id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check book %s: %w", id, err)
	}
	return count > 0, nil
}

// ByAuthor returns the books written by one author.
func (r *Repository) ByAuthor(authorID uuid.UUID) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("author_id = ?", authorID).Order("created_at ASC, id ASC").Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get books for author %s: %w", authorID, err)
	}
	return books, nil
}

// ByAuthors returns the books of several authors in one query, grouped by author ID.
func (r *Repository) ByAuthors(authorIDs []uuid.UUID) (map[uuid.UUID][]entities.Book, error) {
	grouped := make(map[uuid.UUID][]entities.Book, len(authorIDs))
	if len(authorIDs) == 0 {
		return grouped, nil
	}

	var books []entities.Book
	err := r.db.Where("author_id IN ?", authorIDs).Order("created_at ASC, id ASC").Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get books for authors: %w", err)
	}
	for _, b := range books {
		grouped[b.AuthorID] = append(grouped[b.AuthorID], b)
	}
	return grouped, nil
}

// Create persists a new book. The caller is expected to have checked that the
// author exists; a dangling author_id is still rejected by the foreign key.
func (r *Repository) Create(book *entities.Book) error {
	book.CreatedAt = time.Now().UTC()
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", apperror.FromGorm(err))
	}
	return nil
}

// Update applies a patch to an existing book and returns the stored row.
func (r *Repository) Update(id uuid.UUID, patch Patch) (*entities.Book, error) {
	book, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if v := patch.Title; v != nil && *v != "" {
		book.Title = *v
	}
	if v := patch.Volume; v != nil && *v != "" {
		book.Volume = v
	}
	if v := patch.ReleaseYear; v != nil {
		book.ReleaseYear = v
	}
	if v := patch.Description; v != nil && *v != "" {
		book.Description = v
	}
	if v := patch.Genre; v != nil && *v != "" {
		book.Genre = v
	}
	if v := patch.Series; v != nil && *v != "" {
		book.Series = v
	}

	if err := r.db.Save(book).Error; err != nil {
		return nil, fmt.Errorf("failed to update book %s: %w", id, apperror.FromGorm(err))
	}
	return book, nil
}

// Delete removes a book together with its reviews and favourite rows.
func (r *Repository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&entities.Book{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete book %s: %w", id, apperror.FromGorm(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}
