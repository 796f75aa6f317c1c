package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookexchange/internal/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseUUIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	want := uuid.New()
	c.Params = gin.Params{{Key: "id", Value: want.String()}}

	id, ok := parseUUIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, want, id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseUUIDParam_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseUUIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}

func TestParseInclude(t *testing.T) {
	allowed := []string{"reviews", "users"}

	tests := []struct {
		name   string
		query  string
		wantOK bool
		want   includeSet
	}{
		{"absent uses defaults", "/", true, includeSet{"reviews": true}},
		{"empty selects nothing", "/?include=", true, includeSet{}},
		{"explicit list", "/?include=users,%20Reviews", true, includeSet{"users": true, "reviews": true}},
		{"unknown name", "/?include=reviews,author", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", tt.query, nil)

			got, ok := parseInclude(c, allowed, "reviews")

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), "author")
			}
		})
	}
}

func TestRespondAppError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantBody string
	}{
		{fmt.Errorf("book x: %w", apperror.ErrNotFound), http.StatusNotFound, "book not found"},
		{fmt.Errorf("add: %w", apperror.ErrConflict), http.StatusBadRequest, "conflict"},
		{fmt.Errorf("insert: %w", apperror.ErrConstraint), http.StatusBadRequest, "constraint_violation"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondAppError(c, tt.err, "book")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}

func TestRespondCreated_SetsLocation(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondCreated(c, "/books/abc", gin.H{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/books/abc", w.Header().Get("Location"))
}

func TestBindJSON_ReportsJSONFieldNames(t *testing.T) {
	var req createUserRequest
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"not-an-email"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	ok := bindJSON(c, &req)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email must be a valid email address")
	assert.Contains(t, w.Body.String(), "password is required")
}

func TestBindJSON_MalformedBody(t *testing.T) {
	var req createAuthorRequest
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(`{"first_name":`))
	c.Request.Header.Set("Content-Type", "application/json")

	assert.False(t, bindJSON(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
