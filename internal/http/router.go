package http

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// Every catalog route works on its own unit of work
	api := router.Group("/")
	api.Use(UnitOfWorkMiddleware(cfg.Database))

	books := NewBooksController()
	api.GET("/books", books.List)
	api.GET("/books/:id", books.Get)
	api.POST("/books", books.Create)
	api.PUT("/books/:id", books.Update)
	api.DELETE("/books/:id", books.Delete)

	authors := NewAuthorsController()
	api.GET("/authors", authors.List)
	api.GET("/authors/:id", authors.Get)
	api.POST("/authors", authors.Create)
	api.PUT("/authors/:id", authors.Update)
	api.DELETE("/authors/:id", authors.Delete)

	reviews := NewReviewsController()
	api.GET("/reviews", reviews.List)
	api.GET("/reviews/:id", reviews.Get)
	api.POST("/reviews", reviews.Create)
	api.PUT("/reviews/:id", reviews.Update)
	api.DELETE("/reviews/:id", reviews.Delete)

	users := NewUsersController(cfg.BcryptCost)
	api.GET("/users", users.List)
	api.GET("/users/:id", users.Get)
	api.POST("/users", users.Create)
	api.PUT("/users/:id", users.Update)
	api.DELETE("/users/:id", users.Delete)

	favourites := NewFavouritesController()
	api.GET("/users/:id/books", favourites.ListBooks)
	api.POST("/users/:id/books/:bookId", favourites.AddBook)
	api.DELETE("/users/:id/books/:bookId", favourites.RemoveBook)
	api.GET("/users/:id/authors", favourites.ListAuthors)
	api.POST("/users/:id/authors/:authorId", favourites.AddAuthor)
	api.DELETE("/users/:id/authors/:authorId", favourites.RemoveAuthor)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Location"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return cors.New(config)
}
