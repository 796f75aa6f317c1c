package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/bookexchange/internal/auth"
	"github.com/mrlokans/bookexchange/internal/database"
	"github.com/mrlokans/bookexchange/internal/database/users"
	"github.com/mrlokans/bookexchange/internal/entities"
)

var userIncludes = []string{"books", "authors", "reviews"}

type createUserRequest struct {
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required"`
	Role      []string `json:"role"`
}

type updateUserRequest struct {
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Email     *string  `json:"email" binding:"omitempty,email"`
	Password  *string  `json:"password"`
	Role      []string `json:"role"`
}

type UsersController struct {
	bcryptCost int
}

func NewUsersController(bcryptCost int) *UsersController {
	return &UsersController{bcryptCost: bcryptCost}
}

func (controller *UsersController) List(c *gin.Context) {
	include, ok := parseInclude(c, userIncludes, userIncludes...)
	if !ok {
		return
	}
	uow := unitOfWork(c)

	list, err := uow.Users.List()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	response, err := buildUserResponses(uow, list, include)
	if err != nil {
		respondInternalError(c, err, "load user relations")
		return
	}
	c.IndentedJSON(http.StatusOK, response)
}

func (controller *UsersController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	include, ok := parseInclude(c, userIncludes, userIncludes...)
	if !ok {
		return
	}
	uow := unitOfWork(c)

	user, err := uow.Users.GetByID(id)
	if err != nil {
		respondAppError(c, err, "user")
		return
	}
	response, err := buildUserResponses(uow, []entities.User{*user}, include)
	if err != nil {
		respondInternalError(c, err, "load user relations")
		return
	}
	c.IndentedJSON(http.StatusOK, response[0])
}

func (controller *UsersController) Create(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	hash, ok := controller.hashPassword(c, req.Password)
	if !ok {
		return
	}

	user := &entities.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Role:      req.Role,
	}
	if err := unitOfWork(c).Users.Create(user); err != nil {
		respondAppError(c, err, "user")
		return
	}
	respondCreated(c, "/users/"+user.ID.String(), UserResponse{UserSummary: newUserSummary(*user)})
}

func (controller *UsersController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := users.Patch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
	}
	if req.Password != nil && *req.Password != "" {
		hash, ok := controller.hashPassword(c, *req.Password)
		if !ok {
			return
		}
		patch.PasswordHash = &hash
	}

	if _, err := unitOfWork(c).Users.Update(id, patch); err != nil {
		respondAppError(c, err, "user")
		return
	}
	respondNoContent(c)
}

// Delete removes the user together with their reviews and favourites.
func (controller *UsersController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := unitOfWork(c).Users.Delete(id); err != nil {
		respondAppError(c, err, "user")
		return
	}
	respondNoContent(c)
}

func (controller *UsersController) hashPassword(c *gin.Context, password string) (string, bool) {
	hash, err := auth.HashPassword(password, controller.bcryptCost)
	switch {
	case errors.Is(err, auth.ErrPasswordEmpty), errors.Is(err, auth.ErrPasswordTooLong):
		respondBadRequest(c, err.Error())
		return "", false
	case err != nil:
		respondInternalError(c, err, "hash password")
		return "", false
	}
	return hash, true
}

func buildUserResponses(uow *database.UnitOfWork, list []entities.User, include includeSet) ([]UserResponse, error) {
	ids := make([]uuid.UUID, len(list))
	for i, u := range list {
		ids[i] = u.ID
	}

	var (
		favouriteBooks   map[uuid.UUID][]entities.Book
		favouriteAuthors map[uuid.UUID][]entities.Author
		reviewsByUser    map[uuid.UUID][]entities.Review
		err              error
	)
	if include["books"] {
		if favouriteBooks, err = uow.Favourites.BooksForUsers(ids); err != nil {
			return nil, err
		}
	}
	if include["authors"] {
		if favouriteAuthors, err = uow.Favourites.AuthorsForUsers(ids); err != nil {
			return nil, err
		}
	}
	if include["reviews"] {
		if reviewsByUser, err = uow.Reviews.ByUsers(ids); err != nil {
			return nil, err
		}
	}

	response := make([]UserResponse, len(list))
	for i, u := range list {
		response[i] = UserResponse{
			UserSummary: newUserSummary(u),
			Books:       summarize(favouriteBooks[u.ID], newBookSummary),
			Authors:     summarize(favouriteAuthors[u.ID], newAuthorSummary),
			Reviews:     summarize(reviewsByUser[u.ID], newReviewSummary),
		}
	}
	return response, nil
}
