// Package authware is the bearer-token middleware for fiber. It extracts the
// Authorization header, runs the configured validator, and stores the claims
// in request locals for handlers downstream. Requests with a missing,
// malformed, or expired token never reach a protected handler.
package authware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ErrMissingToken is returned when the Authorization header is absent or
// does not carry the expected scheme.
var ErrMissingToken = errors.New("missing or malformed bearer token")

// AuthClaims mirrors the claims interface of the root package so the
// middleware does not depend on it.
type AuthClaims interface {
	Subject() string
	UserID() (uuid.UUID, error)
	CompanyID() (uuid.UUID, error)
	Email() string
	Expires() time.Time
	IssuedAt() time.Time
}

// TokenValidator mirrors the token service's Validate method.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

type Config struct {
	// TokenValidator is required.
	TokenValidator TokenValidator
	// ContextKey is the locals key claims are stored under. Default "user".
	ContextKey string
	// AuthScheme is the expected Authorization scheme. Default "Bearer".
	AuthScheme string
	// Filter skips the middleware when it returns true.
	Filter func(*fiber.Ctx) bool
	// ErrorHandler handles extraction and validation failures. The default
	// responds 401 with a JSON error envelope.
	ErrorHandler func(*fiber.Ctx, error) error
}

func configDefaults(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.TokenValidator == nil {
		panic("authware: missing TokenValidator")
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}
	return cfg
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	message := "Invalid or expired token"
	if errors.Is(err, ErrMissingToken) {
		message = "No token provided"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
}

// New returns the middleware handler.
func New(config ...Config) fiber.Handler {
	cfg := configDefaults(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := ExtractToken(c, cfg.AuthScheme)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, claims)

		return c.Next()
	}
}

// ExtractToken pulls the raw token out of the Authorization header.
func ExtractToken(c *fiber.Ctx, scheme string) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrMissingToken
	}

	prefix := scheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrMissingToken
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
