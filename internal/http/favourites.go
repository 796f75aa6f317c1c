package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/bookexchange/internal/apperror"
	"github.com/mrlokans/bookexchange/internal/database"
)

// favouriteTarget describes one side of a user favourite relation so books
// and authors can share the add/remove flow.
type favouriteTarget struct {
	name   string
	param  string
	exists func(uow *database.UnitOfWork, id uuid.UUID) (bool, error)
	has    func(uow *database.UnitOfWork, userID, id uuid.UUID) (bool, error)
	add    func(uow *database.UnitOfWork, userID, id uuid.UUID) error
	remove func(uow *database.UnitOfWork, userID, id uuid.UUID) error
}

var favouriteBook = favouriteTarget{
	name:  "book",
	param: "bookId",
	exists: func(uow *database.UnitOfWork, id uuid.UUID) (bool, error) {
		return uow.Books.Exists(id)
	},
	has: func(uow *database.UnitOfWork, userID, id uuid.UUID) (bool, error) {
		return uow.Favourites.HasBook(userID, id)
	},
	add: func(uow *database.UnitOfWork, userID, id uuid.UUID) error {
		return uow.Favourites.AddBook(userID, id)
	},
	remove: func(uow *database.UnitOfWork, userID, id uuid.UUID) error {
		return uow.Favourites.RemoveBook(userID, id)
	},
}

var favouriteAuthor = favouriteTarget{
	name:  "author",
	param: "authorId",
	exists: func(uow *database.UnitOfWork, id uuid.UUID) (bool, error) {
		return uow.Authors.Exists(id)
	},
	has: func(uow *database.UnitOfWork, userID, id uuid.UUID) (bool, error) {
		return uow.Favourites.HasAuthor(userID, id)
	},
	add: func(uow *database.UnitOfWork, userID, id uuid.UUID) error {
		return uow.Favourites.AddAuthor(userID, id)
	},
	remove: func(uow *database.UnitOfWork, userID, id uuid.UUID) error {
		return uow.Favourites.RemoveAuthor(userID, id)
	},
}

type FavouritesController struct{}

func NewFavouritesController() *FavouritesController {
	return &FavouritesController{}
}

// ListBooks returns the books a user has favourited.
// GET /users/:id/books
func (fc *FavouritesController) ListBooks(c *gin.Context) {
	userID, ok := fc.requireUser(c)
	if !ok {
		return
	}
	list, err := unitOfWork(c).Favourites.Books(userID)
	if err != nil {
		respondInternalError(c, err, "list favourite books")
		return
	}
	c.IndentedJSON(http.StatusOK, summarize(nonNil(list), newBookSummary))
}

// ListAuthors returns the authors a user has favourited.
// GET /users/:id/authors
func (fc *FavouritesController) ListAuthors(c *gin.Context) {
	userID, ok := fc.requireUser(c)
	if !ok {
		return
	}
	list, err := unitOfWork(c).Favourites.Authors(userID)
	if err != nil {
		respondInternalError(c, err, "list favourite authors")
		return
	}
	c.IndentedJSON(http.StatusOK, summarize(nonNil(list), newAuthorSummary))
}

// AddBook POST /users/:id/books/:bookId
func (fc *FavouritesController) AddBook(c *gin.Context) { fc.add(c, favouriteBook) }

// RemoveBook DELETE /users/:id/books/:bookId
func (fc *FavouritesController) RemoveBook(c *gin.Context) { fc.remove(c, favouriteBook) }

// AddAuthor POST /users/:id/authors/:authorId
func (fc *FavouritesController) AddAuthor(c *gin.Context) { fc.add(c, favouriteAuthor) }

// RemoveAuthor DELETE /users/:id/authors/:authorId
func (fc *FavouritesController) RemoveAuthor(c *gin.Context) { fc.remove(c, favouriteAuthor) }

func (fc *FavouritesController) add(c *gin.Context, target favouriteTarget) {
	userID, targetID, ok := fc.resolvePair(c, target)
	if !ok {
		return
	}
	uow := unitOfWork(c)

	has, err := target.has(uow, userID, targetID)
	if err != nil {
		respondInternalError(c, err, "check favourite "+target.name)
		return
	}
	if has {
		respondAlreadyFavourite(c, target)
		return
	}

	if err := target.add(uow, userID, targetID); err != nil {
		// A concurrent add can slip past the check; the primary key catches it.
		if errors.Is(err, apperror.ErrConflict) {
			respondAlreadyFavourite(c, target)
			return
		}
		respondAppError(c, err, target.name)
		return
	}
	respondNoContent(c)
}

func (fc *FavouritesController) remove(c *gin.Context, target favouriteTarget) {
	userID, targetID, ok := fc.resolvePair(c, target)
	if !ok {
		return
	}
	uow := unitOfWork(c)

	has, err := target.has(uow, userID, targetID)
	if err != nil {
		respondInternalError(c, err, "check favourite "+target.name)
		return
	}
	if !has {
		respondNotFavourite(c, target)
		return
	}

	if err := target.remove(uow, userID, targetID); err != nil {
		if errors.Is(err, apperror.ErrNotAssociated) {
			respondNotFavourite(c, target)
			return
		}
		respondAppError(c, err, target.name)
		return
	}
	respondNoContent(c)
}

// requireUser parses the user ID and answers 404 when no such user exists.
func (fc *FavouritesController) requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return uuid.Nil, false
	}
	exists, err := unitOfWork(c).Users.Exists(userID)
	if err != nil {
		respondInternalError(c, err, "check user")
		return uuid.Nil, false
	}
	if !exists {
		respondError(c, http.StatusNotFound, "user does not exist")
		return uuid.Nil, false
	}
	return userID, true
}

// resolvePair checks the user first and then the target, naming whichever
// is missing.
func (fc *FavouritesController) resolvePair(c *gin.Context, target favouriteTarget) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := fc.requireUser(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	targetID, ok := parseUUIDParam(c, target.param)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	exists, err := target.exists(unitOfWork(c), targetID)
	if err != nil {
		respondInternalError(c, err, "check "+target.name)
		return uuid.Nil, uuid.Nil, false
	}
	if !exists {
		respondError(c, http.StatusNotFound, target.name+" does not exist")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, targetID, true
}

func respondAlreadyFavourite(c *gin.Context, target favouriteTarget) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: fmt.Sprintf("this %s is already in the user's collection", target.name),
		Code:  "conflict",
	})
}

func respondNotFavourite(c *gin.Context, target favouriteTarget) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: fmt.Sprintf("this %s is not in the user's collection", target.name),
		Code:  "not_associated",
	})
}

// nonNil keeps empty lists serialised as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
