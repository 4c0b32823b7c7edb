package middleware

import (
	"github.com/bluestock/ipo-platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "authToken"

// Locals keys set by Authenticate.
const (
	LocalsUserID = "userId"
	LocalsRole   = "role"
)

// Authenticate reads the session cookie, verifies it and stores the claims in
// the request locals. A missing cookie is a 401, a cookie that fails
// verification is a 400.
func Authenticate(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Access Denied. No token provided.",
			})
		}

		claims, err := services.ParseSessionToken(secret, token)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("session token rejected")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid Token",
			})
		}

		c.Locals(LocalsUserID, claims.UserID)
		c.Locals(LocalsRole, claims.Role)
		return c.Next()
	}
}
