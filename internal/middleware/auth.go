package middleware

import (
	"closetshare/internal/common/apperr"
	"closetshare/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthMiddleware validates JWT tokens and injects the acting user into context.
// This is the web-session boundary: every guarded route resolves the session
// to a user id here, before any service is touched.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		// Extract token from "Bearer <token>"
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		token := authHeader[7:]
		claims, err := utils.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(utils.UserClaimsKey, claims)
		c.Locals("userID", claims.UserID)
		return c.Next()
	}
}

// SessionUser returns the acting user's id from locals set by AuthMiddleware.
func SessionUser(c *fiber.Ctx) (primitive.ObjectID, error) {
	idStr, ok := c.Locals("userID").(string)
	if !ok {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, apperr.BadValues("Invalid session user id")
	}
	return id, nil
}
