package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/bookexchange/internal/apperror"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondAppError maps a repository error onto the HTTP taxonomy. Not found
// errors are reported against resource; anything unrecognised is a 500.
func respondAppError(c *gin.Context, err error, resource string) {
	switch status := apperror.MapErrorToStatus(err); status {
	case http.StatusNotFound:
		respondNotFound(c, resource)
	case http.StatusBadRequest:
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: errorCode(err)})
	default:
		respondInternalError(c, err, resource)
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, apperror.ErrConflict):
		return "conflict"
	case errors.Is(err, apperror.ErrNotAssociated):
		return "not_associated"
	case errors.Is(err, apperror.ErrConstraint):
		return "constraint_violation"
	case errors.Is(err, apperror.ErrInvalidInput):
		return "invalid_input"
	}
	return ""
}

// respondMissingParent sends the 404 used when a referenced row is absent.
func respondMissingParent(c *gin.Context, resource string, id uuid.UUID) {
	respondError(c, http.StatusNotFound, fmt.Sprintf("%s with ID %s does not exist", resource, id))
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with a Location header.
func respondCreated(c *gin.Context, location string, data any) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

// respondNoContent sends a 204 with an empty body.
func respondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// --- Parameter Parsing ---

// parseUUIDParam extracts and validates a UUID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns uuid.Nil, false.
func parseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body into req, answering 400 with readable
// validation messages when the body is malformed or fails its binding tags.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   formatBindingError(err),
			Code:    "invalid_input",
			Details: validationDetails(err),
		})
		return false
	}
	return true
}

// --- Relation Includes ---

// includeSet is the parsed value of the include query parameter.
type includeSet map[string]bool

// parseInclude reads the comma-separated include parameter. An absent
// parameter selects defaults; an empty one selects nothing. Unknown names
// are answered with a 400.
func parseInclude(c *gin.Context, allowed []string, defaults ...string) (includeSet, bool) {
	set := includeSet{}
	raw, present := c.GetQuery("include")
	if !present {
		for _, name := range defaults {
			set[name] = true
		}
		return set, true
	}

	for _, name := range strings.Split(raw, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if !slices.Contains(allowed, name) {
			respondBadRequest(c, fmt.Sprintf("unknown include %q, expected one of: %s", name, strings.Join(allowed, ", ")))
			return nil, false
		}
		set[name] = true
	}
	return set, true
}
