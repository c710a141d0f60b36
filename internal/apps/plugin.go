package apps

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rsh/tracker-backend/internal/config"
)

// Plugin defines the interface every resource variant must implement.
// A deployment registers the variants it serves; the default build ships
// both items and todos.
type Plugin interface {
	// ID returns the unique plugin identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the plugin's routes on the /api router.
	// guard is the bearer-token middleware; the plugin decides per route
	// whether a handler is public or protected.
	RegisterRoutes(api fiber.Router, guard fiber.Handler, db *gorm.DB, cfg *config.Config)

	// PurgeUser deletes every row the plugin owns for the user, inside the
	// caller's transaction. Account deletion cascades through this.
	PurgeUser(tx *gorm.DB, userID uint) error
}
