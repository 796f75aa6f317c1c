package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookexchange/internal/entities"
)

func TestBooksController_Create(t *testing.T) {
	t.Run("creates book with fresh id and timestamp", func(t *testing.T) {
		api := setupTestAPI(t)
		author := api.seedAuthor("Frank")

		w := api.do("POST", "/books", gin.H{
			"title":        "Dune",
			"release_year": 1965,
			"genre":        "SF",
			"author_id":    author.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		created := decode[BookResponse](t, w)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, "/books/"+created.ID.String(), w.Header().Get("Location"))

		w = api.do("GET", "/books/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		fetched := decode[BookResponse](t, w)
		assert.Equal(t, "Dune", fetched.Title)
		assert.Equal(t, 1965, *fetched.ReleaseYear)
		assert.Equal(t, author.ID, fetched.AuthorID)
		assert.False(t, fetched.CreatedAt.IsZero())
	})

	t.Run("every create issues a distinct id", func(t *testing.T) {
		api := setupTestAPI(t)
		author := api.seedAuthor("Frank")

		first := decode[BookResponse](t, api.do("POST", "/books", gin.H{"title": "One", "author_id": author.ID}))
		second := decode[BookResponse](t, api.do("POST", "/books", gin.H{"title": "Two", "author_id": author.ID}))
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("ignores client supplied created_at", func(t *testing.T) {
		api := setupTestAPI(t)
		author := api.seedAuthor("Frank")

		w := api.do("POST", "/books", gin.H{
			"title":      "Backdated",
			"author_id":  author.ID,
			"created_at": "1999-01-01T00:00:00Z",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		created := decode[BookResponse](t, w)
		assert.NotEqual(t, 1999, created.CreatedAt.Year())
	})

	t.Run("missing author yields 404 and persists nothing", func(t *testing.T) {
		api := setupTestAPI(t)
		missing := uuid.New()

		w := api.do("POST", "/books", gin.H{"title": "Orphan", "author_id": missing})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "author with ID "+missing.String()+" does not exist")

		list, err := api.uow.Books.List()
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("title is required", func(t *testing.T) {
		api := setupTestAPI(t)
		author := api.seedAuthor("Frank")

		w := api.do("POST", "/books", gin.H{"author_id": author.ID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "title is required")
	})

	t.Run("malformed author id", func(t *testing.T) {
		api := setupTestAPI(t)

		w := api.do("POST", "/books", gin.H{"title": "X", "author_id": "not-a-uuid"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		api := setupTestAPI(t)

		w := api.do("POST", "/books", `{"title":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_Get(t *testing.T) {
	api := setupTestAPI(t)
	author := api.seedAuthor("Frank")
	book := api.seedBook(author.ID, "Dune")
	user := api.seedUser("reader@example.com")
	api.seedReview(user.ID, book.ID, "Spice")
	require.NoError(t, api.uow.Favourites.AddBook(user.ID, book.ID))

	t.Run("includes reviews and users by default", func(t *testing.T) {
		w := api.do("GET", "/books/"+book.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		got := decode[BookResponse](t, w)
		require.Len(t, got.Reviews, 1)
		assert.Equal(t, "Spice", got.Reviews[0].Title)
		require.Len(t, got.Users, 1)
		assert.Equal(t, "reader@example.com", got.Users[0].Email)
		assert.Nil(t, got.Author)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("include selects relations", func(t *testing.T) {
		w := api.do("GET", "/books/"+book.ID.String()+"?include=author", nil)
		require.Equal(t, http.StatusOK, w.Code)

		got := decode[BookResponse](t, w)
		require.NotNil(t, got.Author)
		assert.Equal(t, "Frank", got.Author.FirstName)
		assert.Empty(t, got.Reviews)
		assert.Empty(t, got.Users)
	})

	t.Run("unknown include", func(t *testing.T) {
		w := api.do("GET", "/books/"+book.ID.String()+"?include=highlights", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		w := api.do("GET", "/books/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "book not found")
	})

	t.Run("malformed id", func(t *testing.T) {
		w := api.do("GET", "/books/42", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_List(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do("GET", "/books", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	author := api.seedAuthor("Frank")
	first := api.seedBook(author.ID, "One")
	second := api.seedBook(author.ID, "Two")
	user := api.seedUser("reader@example.com")
	api.seedReview(user.ID, second.ID, "Great")

	w = api.do("GET", "/books", nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[[]BookResponse](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Empty(t, list[0].Reviews)
	require.Len(t, list[1].Reviews, 1)
	assert.Equal(t, second.ID, list[1].Reviews[0].BookID)
}

func TestBooksController_Update(t *testing.T) {
	t.Run("partial update leaves other fields untouched", func(t *testing.T) {
		api := setupTestAPI(t)
		author := api.seedAuthor("Frank")
		genre := "SF"
		year := 1965
		book := &entities.Book{Title: "Dune", Genre: &genre, ReleaseYear: &year, AuthorID: author.ID}
		require.NoError(t, api.uow.Books.Create(book))

		w := api.do("PUT", "/books/"+book.ID.String(), gin.H{"series": "Dune Chronicles", "title": ""})
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		assert.Empty(t, w.Body.String())

		got, err := api.uow.Books.GetByID(book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)
		assert.Equal(t, "SF", *got.Genre)
		assert.Equal(t, 1965, *got.ReleaseYear)
		assert.Equal(t, "Dune Chronicles", *got.Series)
		assert.Equal(t, book.CreatedAt.Unix(), got.CreatedAt.Unix())
	})

	t.Run("missing book", func(t *testing.T) {
		api := setupTestAPI(t)

		w := api.do("PUT", "/books/"+uuid.NewString(), gin.H{"title": "X"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBooksController_Delete(t *testing.T) {
	api := setupTestAPI(t)
	author := api.seedAuthor("Frank")
	book := api.seedBook(author.ID, "Dune")

	w := api.do("DELETE", "/books/"+book.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do("GET", "/books/"+book.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do("DELETE", "/books/"+book.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The author is untouched.
	w = api.do("GET", "/authors/"+author.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
