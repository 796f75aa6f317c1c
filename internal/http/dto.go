package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/bookexchange/internal/entities"
)

// Response shapes are acyclic: a nested collection only ever carries
// summaries, never a path back to its owner.

type AuthorSummary struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    *string   `json:"last_name,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Volume      *string   `json:"volume,omitempty"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Genre       *string   `json:"genre,omitempty"`
	Series      *string   `json:"series,omitempty"`
	AuthorID    uuid.UUID `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReviewSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	UserID      uuid.UUID `json:"user_id"`
	BookID      uuid.UUID `json:"book_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserSummary never carries the password hash.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	Email     string    `json:"email"`
	Role      []string  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type BookResponse struct {
	BookSummary
	Author  *AuthorSummary  `json:"author,omitempty"`
	Reviews []ReviewSummary `json:"reviews,omitempty"`
	Users   []UserSummary   `json:"users,omitempty"`
}

type AuthorResponse struct {
	AuthorSummary
	Books []BookSummary `json:"books,omitempty"`
	Users []UserSummary `json:"users,omitempty"`
}

type ReviewResponse struct {
	ReviewSummary
	Book *BookSummary `json:"book,omitempty"`
	User *UserSummary `json:"user,omitempty"`
}

type UserResponse struct {
	UserSummary
	Books   []BookSummary   `json:"books,omitempty"`
	Authors []AuthorSummary `json:"authors,omitempty"`
	Reviews []ReviewSummary `json:"reviews,omitempty"`
}

func newAuthorSummary(a entities.Author) AuthorSummary {
	return AuthorSummary{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}

func newBookSummary(b entities.Book) BookSummary {
	return BookSummary{
		ID:          b.ID,
		Title:       b.Title,
		Volume:      b.Volume,
		ReleaseYear: b.ReleaseYear,
		Description: b.Description,
		Genre:       b.Genre,
		Series:      b.Series,
		AuthorID:    b.AuthorID,
		CreatedAt:   b.CreatedAt,
	}
}

func newReviewSummary(r entities.Review) ReviewSummary {
	return ReviewSummary{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		UserID:      r.UserID,
		BookID:      r.BookID,
		CreatedAt:   r.CreatedAt,
	}
}

func newUserSummary(u entities.User) UserSummary {
	role := u.Role
	if role == nil {
		role = []string{}
	}
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      role,
		CreatedAt: u.CreatedAt,
	}
}

// summarize maps a slice of entities to their summaries. A nil input stays
// nil so the field is omitted when the relation was not requested.
func summarize[E, S any](items []E, fn func(E) S) []S {
	if items == nil {
		return nil
	}
	out := make([]S, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
