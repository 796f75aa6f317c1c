package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The schema is owned by the SQL migrations in internal/database/migrations;
// the structs below only describe column mapping.

type Author struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	LastName    *string   `json:"last_name,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Author) TableName() string { return "author" }

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Book struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Volume      *string   `json:"volume,omitempty"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Genre       *string   `json:"genre,omitempty"`
	Series      *string   `json:"series,omitempty"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Book) TableName() string { return "book" }

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type Review struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description,omitempty"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	BookID      uuid.UUID `gorm:"type:uuid;not null;index" json:"book_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Review) TableName() string { return "review" }

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	Email     string    `gorm:"not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	Role      []string  `gorm:"serializer:json;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == nil {
		u.Role = []string{}
	}
	return nil
}

// BookUser is a row of the book_user join table: a user's favourite book.
type BookUser struct {
	BookID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (BookUser) TableName() string { return "book_user" }

// AuthorUser is a row of the author_user join table: a user's favourite author.
type AuthorUser struct {
	AuthorID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (AuthorUser) TableName() string { return "author_user" }

// NormalizeRoles collapses duplicate role tags, keeping first-seen order.
// A nil input yields an empty, non-nil set.
func NormalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	seen := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
