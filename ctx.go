package careers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// DefaultContextKey is where the auth middleware stores verified claims.
const DefaultContextKey = "user"

// ClaimsFromFiber extracts the verified claims the middleware stored for the
// request.
func ClaimsFromFiber(c *fiber.Ctx, key string) (AuthClaims, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}

// ActorCompanyID returns the tenant the request actor belongs to. A request
// that reaches a protected handler without claims is treated as unauthorized,
// not as a server fault.
func ActorCompanyID(c *fiber.Ctx, key string) (uuid.UUID, error) {
	claims, ok := ClaimsFromFiber(c, key)
	if !ok {
		return uuid.Nil, ErrTokenMissing
	}
	companyID, err := claims.CompanyID()
	if err != nil {
		return uuid.Nil, ErrTokenMalformed
	}
	return companyID, nil
}

// ActorUserID returns the account id of the request actor.
func ActorUserID(c *fiber.Ctx, key string) (uuid.UUID, error) {
	claims, ok := ClaimsFromFiber(c, key)
	if !ok {
		return uuid.Nil, ErrTokenMissing
	}
	userID, err := claims.UserID()
	if err != nil {
		return uuid.Nil, ErrTokenMalformed
	}
	return userID, nil
}
