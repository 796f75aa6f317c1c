package database

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookexchange/internal/database/authors"
	"github.com/mrlokans/bookexchange/internal/database/books"
	"github.com/mrlokans/bookexchange/internal/database/favourites"
	"github.com/mrlokans/bookexchange/internal/database/reviews"
	"github.com/mrlokans/bookexchange/internal/database/users"
)

// UnitOfWork groups the domain repositories that serve a single request.
// Every write commits on its own; there is no surrounding transaction.
type UnitOfWork struct {
	Authors    *authors.Repository
	Books      *books.Repository
	Reviews    *reviews.Repository
	Users      *users.Repository
	Favourites *favourites.Repository
}

func newUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		Authors:    authors.NewRepository(db),
		Books:      books.NewRepository(db),
		Reviews:    reviews.NewRepository(db),
		Users:      users.NewRepository(db),
		Favourites: favourites.NewRepository(db),
	}
}
