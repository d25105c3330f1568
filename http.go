package careers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// StatusForError translates a rich error into an HTTP status. The explicit
// code wins; otherwise the category decides.
func StatusForError(err error) int {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return http.StatusInternalServerError
	}

	if richErr.Code >= http.StatusBadRequest {
		return richErr.Code
	}

	switch richErr.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponder writes error envelopes. When production is set, internal
// failures collapse to a generic message; the full error is always logged
// server side either way.
type ErrorResponder struct {
	Logger     Logger
	Production bool
}

// Respond sends {"error": "..."} with the mapped status. No raw storage
// error ever reaches the wire.
func (r ErrorResponder) Respond(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "Internal server error").
			WithCode(errors.CodeInternal)
	}

	status := StatusForError(richErr)
	message := richErr.Message

	// Validation failures name the offending fields instead of the
	// request-level message.
	if len(richErr.ValidationErrors) > 0 {
		parts := make([]string, len(richErr.ValidationErrors))
		for i, fieldErr := range richErr.ValidationErrors {
			parts[i] = fieldErr.Field + ": " + fieldErr.Message
		}
		message = strings.Join(parts, "; ")
	}

	if status >= http.StatusInternalServerError {
		r.Logger.Error("request failed",
			"error", err,
			"category", richErr.Category,
			"path", c.Path(),
			"method", c.Method(),
		)
		if r.Production {
			message = "Internal server error"
		}
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}
