package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/bookexchange/internal/database"
	"github.com/mrlokans/bookexchange/internal/database/books"
	"github.com/mrlokans/bookexchange/internal/entities"
)

var bookIncludes = []string{"author", "reviews", "users"}

type createBookRequest struct {
	Title       string    `json:"title" binding:"required"`
	Volume      *string   `json:"volume"`
	ReleaseYear *int      `json:"release_year"`
	Description *string   `json:"description"`
	Genre       *string   `json:"genre"`
	Series      *string   `json:"series"`
	AuthorID    uuid.UUID `json:"author_id" binding:"required"`
}

type updateBookRequest struct {
	Title       *string `json:"title"`
	Volume      *string `json:"volume"`
	ReleaseYear *int    `json:"release_year"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
	Series      *string `json:"series"`
}

type BooksController struct{}

func NewBooksController() *BooksController {
	return &BooksController{}
}

func (controller *BooksController) List(c *gin.Context) {
	include, ok := parseInclude(c, bookIncludes, "reviews", "users")
	if !ok {
		return
	}
	uow := unitOfWork(c)

	list, err := uow.Books.List()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	response, err := buildBookResponses(uow, list, include)
	if err != nil {
		respondInternalError(c, err, "load book relations")
		return
	}
	c.IndentedJSON(http.StatusOK, response)
}

func (controller *BooksController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	include, ok := parseInclude(c, bookIncludes, "reviews", "users")
	if !ok {
		return
	}
	uow := unitOfWork(c)

	book, err := uow.Books.GetByID(id)
	if err != nil {
		respondAppError(c, err, "book")
		return
	}
	response, err := buildBookResponses(uow, []entities.Book{*book}, include)
	if err != nil {
		respondInternalError(c, err, "load book relations")
		return
	}
	c.IndentedJSON(http.StatusOK, response[0])
}

func (controller *BooksController) Create(c *gin.Context) {
	var req createBookRequest
	if !bindJSON(c, &req) {
		return
	}
	uow := unitOfWork(c)

	exists, err := uow.Authors.Exists(req.AuthorID)
	if err != nil {
		respondInternalError(c, err, "check author")
		return
	}
	if !exists {
		respondMissingParent(c, "author", req.AuthorID)
		return
	}

	book := &entities.Book{
		Title:       req.Title,
		Volume:      req.Volume,
		ReleaseYear: req.ReleaseYear,
		Description: req.Description,
		Genre:       req.Genre,
		Series:      req.Series,
		AuthorID:    req.AuthorID,
	}
	if err := uow.Books.Create(book); err != nil {
		respondAppError(c, err, "book")
		return
	}
	respondCreated(c, "/books/"+book.ID.String(), BookResponse{BookSummary: newBookSummary(*book)})
}

func (controller *BooksController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req updateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := unitOfWork(c).Books.Update(id, books.Patch{
		Title:       req.Title,
		Volume:      req.Volume,
		ReleaseYear: req.ReleaseYear,
		Description: req.Description,
		Genre:       req.Genre,
		Series:      req.Series,
	})
	if err != nil {
		respondAppError(c, err, "book")
		return
	}
	respondNoContent(c)
}

func (controller *BooksController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := unitOfWork(c).Books.Delete(id); err != nil {
		respondAppError(c, err, "book")
		return
	}
	respondNoContent(c)
}

// buildBookResponses attaches the requested relations to each book, issuing
// one query per relation for the whole slice.
func buildBookResponses(uow *database.UnitOfWork, list []entities.Book, include includeSet) ([]BookResponse, error) {
	ids := make([]uuid.UUID, len(list))
	authorIDs := make([]uuid.UUID, 0, len(list))
	for i, b := range list {
		ids[i] = b.ID
		authorIDs = append(authorIDs, b.AuthorID)
	}

	var (
		authorsByID map[uuid.UUID]entities.Author
		reviews     map[uuid.UUID][]entities.Review
		users       map[uuid.UUID][]entities.User
		err         error
	)
	if include["author"] {
		if authorsByID, err = uow.Authors.ByIDs(authorIDs); err != nil {
			return nil, err
		}
	}
	if include["reviews"] {
		if reviews, err = uow.Reviews.ByBooks(ids); err != nil {
			return nil, err
		}
	}
	if include["users"] {
		if users, err = uow.Favourites.UsersForBooks(ids); err != nil {
			return nil, err
		}
	}

	response := make([]BookResponse, len(list))
	for i, b := range list {
		response[i] = BookResponse{
			BookSummary: newBookSummary(b),
			Reviews:     summarize(reviews[b.ID], newReviewSummary),
			Users:       summarize(users[b.ID], newUserSummary),
		}
		if author, ok := authorsByID[b.AuthorID]; ok {
			summary := newAuthorSummary(author)
			response[i].Author = &summary
		}
	}
	return response, nil
}
