package jwt

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/PriyanshiDabral/Employee-Management/pkg/auth"
)

const identityKey = "identity"

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success it stores the decoded identity in c.Locals, plus "userId" and "isAdmin".
// revoker may be nil.
func NewAuthMiddleware(v *Verifier, revoker auth.TokenRevoker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing Authorization header")
		}
		tokenStr := bearerToken(authHeader)
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "empty token")
		}
		id, err := v.Parse(tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, ErrInvalidToken.Error())
		}
		if revoker != nil && id.TokenID != "" {
			revoked, err := revoker.IsRevoked(c.UserContext(), id.TokenID)
			if err != nil {
				log.Printf("token revocation lookup failed: %v", err)
				return fiber.NewError(fiber.StatusUnauthorized, "unable to validate token")
			}
			if revoked {
				return fiber.NewError(fiber.StatusUnauthorized, "token has been revoked")
			}
		}
		c.Locals(identityKey, id)
		c.Locals("userId", id.UserID.String())
		if id.IsAdmin() {
			c.Locals("isAdmin", true)
		}
		return c.Next()
	}
}

// RequireAdmin rejects authenticated callers without the admin role.
// It must run after NewAuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
		}
		if !id.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by NewAuthMiddleware.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(identityKey).(auth.Identity)
	return id, ok
}

// bearerToken accepts both "Bearer <token>" and a bare token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	if strings.Contains(header, " ") {
		return ""
	}
	return header
}
