package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rsh/tracker-backend/internal/config"
	"github.com/rsh/tracker-backend/internal/dto"
	"github.com/rsh/tracker-backend/internal/identity"
	"github.com/rsh/tracker-backend/internal/models"
)

// Protected rejects requests without a valid bearer token. Missing header,
// wrong scheme, malformed and expired tokens all get the same response, as
// does a token whose account has since been deleted.
func Protected(cfg *config.Config, db *gorm.DB) fiber.Handler {
	unauthorized := func(c *fiber.Ctx, _ error) error {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "Authentication required",
		})
	}

	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.SecretKey)},
		ErrorHandler: unauthorized,
		SuccessHandler: func(c *fiber.Ctx) error {
			// The signature only proves the token was valid when issued;
			// the account must still exist for the request to proceed.
			userID, err := identity.UserID(c)
			if err != nil {
				return unauthorized(c, err)
			}
			if err := db.First(&models.User{}, "id = ?", userID).Error; err != nil {
				return unauthorized(c, err)
			}
			return c.Next()
		},
	})
}
