// Package identity extracts the acting user from the request context set up
// by the JWT and admin middleware.
package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/authz"
)

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// GetActor builds the authorization actor for the request. Admin status comes
// from the admin middleware (which may grant it via token header, config
// lists, or the DB role) or from the JWT role claim.
func GetActor(c *fiber.Ctx) authz.Actor {
	id, err := GetUserID(c)
	if err != nil {
		id = uuid.Nil
	}

	admin, _ := c.Locals("is_admin").(bool)
	if !admin {
		if token, ok := c.Locals("user").(*jwt.Token); ok {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				role, _ := claims["role"].(string)
				admin = role == "admin"
			}
		}
	}

	return authz.Actor{ID: id, Admin: admin}
}
