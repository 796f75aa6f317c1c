package books

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookexchange/internal/apperror"
	"github.com/mrlokans/bookexchange/internal/database/dbtest"
	"github.com/mrlokans/bookexchange/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	t.Helper()
	db := dbtest.Open(t)
	return db, NewRepository(db)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func createTestAuthor(t *testing.T, db *gorm.DB) *entities.Author {
	t.Helper()
	author := &entities.Author{FirstName: "Test Author"}
	require.NoError(t, db.Create(author).Error)
	return author
}

func createTestBook(t *testing.T, repo *Repository, authorID uuid.UUID, title string) *entities.Book {
	t.Helper()
	book := &entities.Book{Title: title, AuthorID: authorID}
	require.NoError(t, repo.Create(book))
	return book
}

func TestRepository_Create(t *testing.T) {
	db, repo := setupTestDB(t)
	author := createTestAuthor(t, db)

	book := &entities.Book{
		Title:       "Dune",
		ReleaseYear: intPtr(1965),
		Genre:       strPtr("SF"),
		AuthorID:    author.ID,
	}
	require.NoError(t, repo.Create(book))
	assert.NotEqual(t, uuid.Nil, book.ID)

	got, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, author.ID, got.AuthorID)
	require.NotNil(t, got.ReleaseYear)
	assert.Equal(t, 1965, *got.ReleaseYear)
	assert.Nil(t, got.Volume)
}

func TestRepository_Create_UnknownAuthor(t *testing.T) {
	_, repo := setupTestDB(t)

	err := repo.Create(&entities.Book{Title: "Orphan", AuthorID: uuid.New()})
	assert.Error(t, err)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	_, repo := setupTestDB(t)

	_, err := repo.GetByID(uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRepository_ListAndExists(t *testing.T) {
	db, repo := setupTestDB(t)
	author := createTestAuthor(t, db)
	first := createTestBook(t, repo, author.ID, "One")
	second := createTestBook(t, repo, author.ID, "Two")

	books, err := repo.List()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, first.ID, books[0].ID)
	assert.Equal(t, second.ID, books[1].ID)

	ok, err := repo.Exists(first.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_ByAuthors(t *testing.T) {
	db, repo := setupTestDB(t)
	a1 := createTestAuthor(t, db)
	a2 := createTestAuthor(t, db)
	a3 := createTestAuthor(t, db)

	createTestBook(t, repo, a1.ID, "A1 first")
	createTestBook(t, repo, a1.ID, "A1 second")
	createTestBook(t, repo, a2.ID, "A2 only")

	grouped, err := repo.ByAuthors([]uuid.UUID{a1.ID, a2.ID, a3.ID})
	require.NoError(t, err)
	assert.Len(t, grouped[a1.ID], 2)
	assert.Len(t, grouped[a2.ID], 1)
	assert.Empty(t, grouped[a3.ID])
	assert.Equal(t, "A1 first", grouped[a1.ID][0].Title)

	single, err := repo.ByAuthor(a2.ID)
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "A2 only", single[0].Title)

	empty, err := repo.ByAuthors(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_Update(t *testing.T) {
	db, repo := setupTestDB(t)
	author := createTestAuthor(t, db)
	book := &entities.Book{Title: "Original", Series: strPtr("Saga"), AuthorID: author.ID}
	require.NoError(t, repo.Create(book))

	updated, err := repo.Update(book.ID, Patch{
		Title:       strPtr("Renamed"),
		Series:      strPtr(""),
		ReleaseYear: intPtr(2001),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Saga", *updated.Series)
	assert.Equal(t, 2001, *updated.ReleaseYear)
	assert.Equal(t, author.ID, updated.AuthorID)

	got, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	_, err = repo.Update(uuid.New(), Patch{Title: strPtr("x")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRepository_Delete_CascadesToReviewsAndFavourites(t *testing.T) {
	db, repo := setupTestDB(t)
	author := createTestAuthor(t, db)
	book := createTestBook(t, repo, author.ID, "Doomed")

	user := &entities.User{Email: "reader@example.com", Password: "hash"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&entities.Review{Title: "Great", UserID: user.ID, BookID: book.ID}).Error)
	require.NoError(t, db.Create(&entities.BookUser{BookID: book.ID, UserID: user.ID}).Error)

	require.NoError(t, repo.Delete(book.ID))

	var reviews, favourites int64
	db.Model(&entities.Review{}).Where("book_id = ?", book.ID).Count(&reviews)
	db.Model(&entities.BookUser{}).Where("book_id = ?", book.ID).Count(&favourites)
	assert.Zero(t, reviews)
	assert.Zero(t, favourites)

	assert.ErrorIs(t, repo.Delete(book.ID), apperror.ErrNotFound)
}

func TestRepository_ByIDs(t *testing.T) {
	db, repo := setupTestDB(t)
	author := createTestAuthor(t, db)
	book := createTestBook(t, repo, author.ID, "Found")

	found, err := repo.ByIDs([]uuid.UUID{book.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Found", found[book.ID].Title)
}
