// Package favourites provides database operations for the user↔book and
// user↔author favourite relations.
//
// The relations live in the book_user and author_user join tables. Each row
// is keyed by the pair, so a pair can be stored at most once; both foreign
// keys cascade on delete.
//
// # Usage
//
//	repo := favourites.NewRepository(db.WithContext(ctx))
//	if err := repo.AddBook(userID, bookID); err != nil { ... }
//	books, err := repo.Books(userID)
package favourites

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookexchange/internal/apperror"
	"github.com/mrlokans/bookexchange/internal/entities"
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// --- Books ---

// Books returns the books a user has favourited.
func (r *Repository) Books(userID uuid.UUID) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Joins("JOIN book_user ON book_user.book_id = book.id").
		Where("book_user.user_id = ?", userID).
		Order("book.created_at ASC, book.id ASC").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get favourite books for user %s: %w", userID, err)
	}
	return books, nil
}

// HasBook reports whether the user has favourited the book.
func (r *Repository) HasBook(userID, bookID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&entities.BookUser{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favourite book: %w", err)
	}
	return count > 0, nil
}

// AddBook stores a favourite book. A pair that already exists yields
// apperror.ErrConflict.
func (r *Repository) AddBook(userID, bookID uuid.UUID) error {
	row := entities.BookUser{BookID: bookID, UserID: userID}
	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to add favourite book %s: %w", bookID, apperror.FromGorm(err))
	}
	return nil
}

// RemoveBook deletes a favourite book. A pair that does not exist yields
// apperror.ErrNotAssociated.
func (r *Repository) RemoveBook(userID, bookID uuid.UUID) error {
	result := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&entities.BookUser{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favourite book %s: %w", bookID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %s: %w", bookID, apperror.ErrNotAssociated)
	}
	return nil
}

// BooksForUsers returns the favourite books of several users, grouped by user ID.
func (r *Repository) BooksForUsers(userIDs []uuid.UUID) (map[uuid.UUID][]entities.Book, error) {
	grouped := make(map[uuid.UUID][]entities.Book, len(userIDs))
	if len(userIDs) == 0 {
		return grouped, nil
	}

	var rows []struct {
		entities.Book
		FavouritedBy uuid.UUID
	}
	err := r.db.Model(&entities.Book{}).
		Select("book.*, book_user.user_id AS favourited_by").
		Joins("JOIN book_user ON book_user.book_id = book.id").
		Where("book_user.user_id IN ?", userIDs).
		Order("book.created_at ASC, book.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get favourite books for users: %w", err)
	}
	for _, row := range rows {
		grouped[row.FavouritedBy] = append(grouped[row.FavouritedBy], row.Book)
	}
	return grouped, nil
}

// UsersForBooks returns the users that favourited each of the given books.
func (r *Repository) UsersForBooks(bookIDs []uuid.UUID) (map[uuid.UUID][]entities.User, error) {
	return r.usersFor("book_user", "book_id", bookIDs)
}

// --- Authors ---

// Authors returns the authors a user has favourited.
func (r *Repository) Authors(userID uuid.UUID) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.
		Joins("JOIN author_user ON author_user.author_id = author.id").
		Where("author_user.user_id = ?", userID).
		Order("author.created_at ASC, author.id ASC").
		Find(&authors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get favourite authors for user %s: %w", userID, err)
	}
	return authors, nil
}

// HasAuthor reports whether the user has favourited the author.
func (r *Repository) HasAuthor(userID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&entities.AuthorUser{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favourite author: %w", err)
	}
	return count > 0, nil
}

// AddAuthor stores a favourite author. A pair that already exists yields
// apperror.ErrConflict.
func (r *Repository) AddAuthor(userID, authorID uuid.UUID) error {
	row := entities.AuthorUser{AuthorID: authorID, UserID: userID}
	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to add favourite author %s: %w", authorID, apperror.FromGorm(err))
	}
	return nil
}

// RemoveAuthor deletes a favourite author. A pair that does not exist yields
// apperror.ErrNotAssociated.
func (r *Repository) RemoveAuthor(userID, authorID uuid.UUID) error {
	result := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&entities.AuthorUser{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favourite author %s: %w", authorID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("author %s: %w", authorID, apperror.ErrNotAssociated)
	}
	return nil
}

// AuthorsForUsers returns the favourite authors of several users, grouped by user ID.
func (r *Repository) AuthorsForUsers(userIDs []uuid.UUID) (map[uuid.UUID][]entities.Author, error) {
	grouped := make(map[uuid.UUID][]entities.Author, len(userIDs))
	if len(userIDs) == 0 {
		return grouped, nil
	}

	var rows []struct {
		entities.Author
		FavouritedBy uuid.UUID
	}
	err := r.db.Model(&entities.Author{}).
		Select("author.*, author_user.user_id AS favourited_by").
		Joins("JOIN author_user ON author_user.author_id = author.id").
		Where("author_user.user_id IN ?", userIDs).
		Order("author.created_at ASC, author.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get favourite authors for users: %w", err)
	}
	for _, row := range rows {
		grouped[row.FavouritedBy] = append(grouped[row.FavouritedBy], row.Author)
	}
	return grouped, nil
}

// UsersForAuthors returns the users that favourited each of the given authors.
func (r *Repository) UsersForAuthors(authorIDs []uuid.UUID) (map[uuid.UUID][]entities.User, error) {
	return r.usersFor("author_user", "author_id", authorIDs)
}

// usersFor loads users joined through a favourite table, grouped by the
// other side of the pair.
func (r *Repository) usersFor(joinTable, keyColumn string, ids []uuid.UUID) (map[uuid.UUID][]entities.User, error) {
	grouped := make(map[uuid.UUID][]entities.User, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}

	var rows []struct {
		entities.User
		FavouriteID uuid.UUID
	}
	// "user" is reserved in every supported dialect, so it goes through the
	// dialector's quoting.
	user := r.db.Statement.Quote(entities.User{}.TableName())
	err := r.db.Model(&entities.User{}).
		Select(fmt.Sprintf("%s.*, %s.%s AS favourite_id", user, joinTable, keyColumn)).
		Joins(fmt.Sprintf("JOIN %s ON %s.user_id = %s.id", joinTable, joinTable, user)).
		Where(fmt.Sprintf("%s.%s IN ?", joinTable, keyColumn), ids).
		Order(fmt.Sprintf("%s.created_at ASC, %s.id ASC", user, user)).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users from %s: %w", joinTable, err)
	}
	for _, row := range rows {
		grouped[row.FavouriteID] = append(grouped[row.FavouriteID], row.User)
	}
	return grouped, nil
}
