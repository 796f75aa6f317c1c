package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/bookexchange/internal/database"
	"github.com/mrlokans/bookexchange/internal/database/authors"
	"github.com/mrlokans/bookexchange/internal/entities"
)

var authorIncludes = []string{"books", "users"}

type createAuthorRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    *string `json:"last_name"`
	Description *string `json:"description"`
}

type updateAuthorRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Description *string `json:"description"`
}

type AuthorsController struct{}

func NewAuthorsController() *AuthorsController {
	return &AuthorsController{}
}

func (controller *AuthorsController) List(c *gin.Context) {
	include, ok := parseInclude(c, authorIncludes, "books", "users")
	if !ok {
		return
	}
	uow := unitOfWork(c)

	list, err := uow.Authors.List()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	response, err := buildAuthorResponses(uow, list, include)
	if err != nil {
		respondInternalError(c, err, "load author relations")
		return
	}
	c.IndentedJSON(http.StatusOK, response)
}

func (controller *AuthorsController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	include, ok := parseInclude(c, authorIncludes, "books", "users")
	if !ok {
		return
	}
	uow := unitOfWork(c)

	author, err := uow.Authors.GetByID(id)
	if err != nil {
		respondAppError(c, err, "author")
		return
	}
	response, err := buildAuthorResponses(uow, []entities.Author{*author}, include)
	if err != nil {
		respondInternalError(c, err, "load author relations")
		return
	}
	c.IndentedJSON(http.StatusOK, response[0])
}

func (controller *AuthorsController) Create(c *gin.Context) {
	var req createAuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	author := &entities.Author{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Description: req.Description,
	}
	if err := unitOfWork(c).Authors.Create(author); err != nil {
		respondAppError(c, err, "author")
		return
	}
	respondCreated(c, "/authors/"+author.ID.String(), AuthorResponse{AuthorSummary: newAuthorSummary(*author)})
}

func (controller *AuthorsController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req updateAuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := unitOfWork(c).Authors.Update(id, authors.Patch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Description: req.Description,
	})
	if err != nil {
		respondAppError(c, err, "author")
		return
	}
	respondNoContent(c)
}

// Delete removes the author and, through the cascade, every book they wrote.
func (controller *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := unitOfWork(c).Authors.Delete(id); err != nil {
		respondAppError(c, err, "author")
		return
	}
	respondNoContent(c)
}

func buildAuthorResponses(uow *database.UnitOfWork, list []entities.Author, include includeSet) ([]AuthorResponse, error) {
	ids := make([]uuid.UUID, len(list))
	for i, a := range list {
		ids[i] = a.ID
	}

	var (
		booksByAuthor map[uuid.UUID][]entities.Book
		users         map[uuid.UUID][]entities.User
		err           error
	)
	if include["books"] {
		if booksByAuthor, err = uow.Books.ByAuthors(ids); err != nil {
			return nil, err
		}
	}
	if include["users"] {
		if users, err = uow.Favourites.UsersForAuthors(ids); err != nil {
			return nil, err
		}
	}

	response := make([]AuthorResponse, len(list))
	for i, a := range list {
		response[i] = AuthorResponse{
			AuthorSummary: newAuthorSummary(a),
			Books:         summarize(booksByAuthor[a.ID], newBookSummary),
			Users:         summarize(users[a.ID], newUserSummary),
		}
	}
	return response, nil
}
