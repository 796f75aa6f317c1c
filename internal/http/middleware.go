package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookexchange/internal/database"
)

// unitOfWorkContextKey is the Gin context key holding the request's repositories.
const unitOfWorkContextKey = "unit_of_work"

// UnitOfWorkMiddleware gives every request its own database.UnitOfWork bound
// to the request context, so a cancelled request cancels its queries.
func UnitOfWorkMiddleware(db *database.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(unitOfWorkContextKey, db.UnitOfWork(c.Request.Context()))
		c.Next()
	}
}

// unitOfWork returns the repositories installed by UnitOfWorkMiddleware.
func unitOfWork(c *gin.Context) *database.UnitOfWork {
	return c.MustGet(unitOfWorkContextKey).(*database.UnitOfWork)
}

// SecurityHeadersMiddleware adds security headers suited to a JSON API.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Responses are data, never documents to frame or render
		c.Header("X-Frame-Options", "DENY")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
