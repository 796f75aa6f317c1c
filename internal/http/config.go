package http

import (
	"github.com/mrlokans/bookexchange/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Cross-origin access; "*" allows any origin
	AllowedOrigins []string

	// bcrypt work factor for user passwords
	BcryptCost int

	// Application info
	Version string
}
