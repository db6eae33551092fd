package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const bearerPrefix = "Bearer "

// Key under which the authenticated user's ID is stored in the request
// context.
const userIDKey = "userID"

// UserID returns the authenticated user's ID bound by Authenticate.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// Authenticate gates every protected route: it requires a bearer access
// token, verifies it, and confirms the user still exists before binding the
// user ID to the request.
func (h *AuthHandler) Authenticate(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return unauthorized(c, "missing or malformed authorization header")
	}

	claims, err := h.tokenService.VerifyAccessToken(strings.TrimPrefix(authHeader, bearerPrefix))
	if err != nil {
		return unauthorized(c, "invalid or expired token")
	}

	// The token may outlive the account.
	user, err := h.userService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return unauthorized(c, "user not found")
	}

	c.Locals(userIDKey, user.ID)

	return c.Next()
}

// RequirePremium rejects authenticated users without a premium entitlement.
// Must run after Authenticate.
func (h *AuthHandler) RequirePremium(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(c.Context(), UserID(c))
	if err != nil {
		return unauthorized(c, "user not found")
	}

	if !user.IsPremium {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "this feature requires a premium subscription",
		})
	}

	return c.Next()
}
