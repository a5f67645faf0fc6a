// file: internals/helpers/auth/school_context.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ============================================
   Locals Keys (middleware should set these)
   ============================================ */

const (
	LocUserID         = "user_id"          // string | uuid
	LocActiveSchoolID = "active_school_id" // string UUID
	LocRolesGlobal    = "roles_global"     // []string
)

// GetActiveSchoolID reads the caller's school scope hydrated by the JWT
// middleware. Every ledger operation must be scoped by this id.
func GetActiveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals(LocActiveSchoolID)
	switch v := raw.(type) {
	case uuid.UUID:
		if v != uuid.Nil {
			return v, nil
		}
	case string:
		s := strings.TrimSpace(v)
		if s != "" {
			if id, err := uuid.Parse(s); err == nil && id != uuid.Nil {
				return id, nil
			}
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "School scope missing from token")
}

// GetUserID reads the authenticated user id, when the operation wants to
// record who acted (payer, refund issuer).
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals(LocUserID)
	switch v := raw.(type) {
	case uuid.UUID:
		if v != uuid.Nil {
			return v, nil
		}
	case string:
		if id, err := uuid.Parse(strings.TrimSpace(v)); err == nil && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
}
