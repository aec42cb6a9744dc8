package auth

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/frederic5962/bill-app/internal/domain"
	"github.com/frederic5962/bill-app/internal/kv"
)

// SessionGate protects the bill routes: it requires a persisted
// session record and, when an access token is present, a valid HS256
// signature on it. The record's email and role are exposed to
// downstream handlers via locals.
func SessionGate(sessions kv.Store, secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := sessions.Get(c.UserContext(), kv.KeyUser)
		if err != nil || raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "not connected")
		}

		var record domain.SessionRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "not connected")
		}

		token, err := sessions.Get(c.UserContext(), kv.KeyJWT)
		if err == nil && token != "" {
			parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("invalid signing method")
				}
				return secret, nil
			})
			if err != nil || !parsed.Valid {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
			}
		}

		c.Locals("email", record.Email)
		c.Locals("role", string(record.Type))
		return c.Next()
	}
}

// RequireAdmin gates the dashboard routes behind the Admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != string(domain.RoleAdmin) {
			return fiber.NewError(fiber.StatusForbidden, "admin only")
		}
		return c.Next()
	}
}
