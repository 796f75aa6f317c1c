package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/bookexchange/internal/database"
	"github.com/mrlokans/bookexchange/internal/database/reviews"
	"github.com/mrlokans/bookexchange/internal/entities"
)

var reviewIncludes = []string{"book", "user"}

type createReviewRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	UserID      uuid.UUID `json:"user_id" binding:"required"`
	BookID      uuid.UUID `json:"book_id" binding:"required"`
}

type updateReviewRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type ReviewsController struct{}

func NewReviewsController() *ReviewsController {
	return &ReviewsController{}
}

func (controller *ReviewsController) List(c *gin.Context) {
	include, ok := parseInclude(c, reviewIncludes)
	if !ok {
		return
	}
	uow := unitOfWork(c)

	list, err := uow.Reviews.List()
	if err != nil {
		respondInternalError(c, err, "list reviews")
		return
	}
	response, err := buildReviewResponses(uow, list, include)
	if err != nil {
		respondInternalError(c, err, "load review relations")
		return
	}
	c.IndentedJSON(http.StatusOK, response)
}

func (controller *ReviewsController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	include, ok := parseInclude(c, reviewIncludes)
	if !ok {
		return
	}
	uow := unitOfWork(c)

	review, err := uow.Reviews.GetByID(id)
	if err != nil {
		respondAppError(c, err, "review")
		return
	}
	response, err := buildReviewResponses(uow, []entities.Review{*review}, include)
	if err != nil {
		respondInternalError(c, err, "load review relations")
		return
	}
	c.IndentedJSON(http.StatusOK, response[0])
}

// Create checks the user first, then the book, so a request missing both
// reports the user.
func (controller *ReviewsController) Create(c *gin.Context) {
	var req createReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	uow := unitOfWork(c)

	exists, err := uow.Users.Exists(req.UserID)
	if err != nil {
		respondInternalError(c, err, "check user")
		return
	}
	if !exists {
		respondMissingParent(c, "user", req.UserID)
		return
	}

	exists, err = uow.Books.Exists(req.BookID)
	if err != nil {
		respondInternalError(c, err, "check book")
		return
	}
	if !exists {
		respondMissingParent(c, "book", req.BookID)
		return
	}

	review := &entities.Review{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
		BookID:      req.BookID,
	}
	if err := uow.Reviews.Create(review); err != nil {
		respondAppError(c, err, "review")
		return
	}
	respondCreated(c, "/reviews/"+review.ID.String(), ReviewResponse{ReviewSummary: newReviewSummary(*review)})
}

func (controller *ReviewsController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req updateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := unitOfWork(c).Reviews.Update(id, reviews.Patch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondAppError(c, err, "review")
		return
	}
	respondNoContent(c)
}

func (controller *ReviewsController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := unitOfWork(c).Reviews.Delete(id); err != nil {
		respondAppError(c, err, "review")
		return
	}
	respondNoContent(c)
}

func buildReviewResponses(uow *database.UnitOfWork, list []entities.Review, include includeSet) ([]ReviewResponse, error) {
	bookIDs := make([]uuid.UUID, len(list))
	userIDs := make([]uuid.UUID, len(list))
	for i, r := range list {
		bookIDs[i] = r.BookID
		userIDs[i] = r.UserID
	}

	var (
		booksByID map[uuid.UUID]entities.Book
		usersByID map[uuid.UUID]entities.User
		err       error
	)
	if include["book"] {
		if booksByID, err = uow.Books.ByIDs(bookIDs); err != nil {
			return nil, err
		}
	}
	if include["user"] {
		if usersByID, err = uow.Users.ByIDs(userIDs); err != nil {
			return nil, err
		}
	}

	response := make([]ReviewResponse, len(list))
	for i, r := range list {
		response[i] = ReviewResponse{ReviewSummary: newReviewSummary(r)}
		if book, ok := booksByID[r.BookID]; ok {
			summary := newBookSummary(book)
			response[i].Book = &summary
		}
		if user, ok := usersByID[r.UserID]; ok {
			summary := newUserSummary(user)
			response[i].User = &summary
		}
	}
	return response, nil
}
