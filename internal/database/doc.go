// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, driver selection
//	├── unit_of_work.go  # Per-request repository bundle
//	├── migrations/      # Embedded golang-migrate schema per driver
//	├── authors/         # Author CRUD
//	├── books/           # Book CRUD, books by author
//	├── reviews/         # Review CRUD, reviews by book or user
//	├── users/           # User CRUD
//	├── favourites/      # book_user and author_user join tables
//	└── dbtest/          # Migrated SQLite databases for tests
//
// # Using a Unit of Work
//
// HTTP handlers never share repositories. Each request gets its own set,
// bound to the request context:
//
//	db, err := database.NewDatabase(cfg.Database)
//	uow := db.UnitOfWork(ctx)
//	book, err := uow.Books.GetByID(id)
//	reviews, err := uow.Reviews.ByBook(id)
//
// # Relations
//
// Relations are never loaded implicitly. Related rows are fetched with the
// explicit batch loaders (books.ByAuthors, reviews.ByBooks,
// favourites.UsersForBooks and friends), which return maps keyed by the
// owning ID and issue one query per relation regardless of page size.
//
// # Errors
//
// Repositories wrap failures with fmt.Errorf and translate gorm errors into
// the apperror sentinels, so callers test with errors.Is:
//
//	if errors.Is(err, apperror.ErrNotFound) { ... }
//
// # Adding a New Domain
//
//  1. Add the table to each driver directory under migrations/
//  2. Create a new sub-package with a Repository struct holding a *gorm.DB
//  3. Add a NewRepository(db *gorm.DB) constructor
//  4. Expose it on UnitOfWork
package database
