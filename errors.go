package careers

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	TextCodeTokenMissing       = "auth_token_missing"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeTokenMalformed     = "auth_token_malformed"
	TextCodeNotAuthorized      = "tenant_not_authorized"
	TextCodeEmailTaken         = "account_email_taken"
	TextCodeDuplicateSlug      = "slug_duplicate"
	TextCodeCompanyNotFound    = "company_not_found"
	TextCodeThemeNotFound      = "theme_not_found"
	TextCodeJobNotFound        = "job_not_found"
	TextCodeSectionNotFound    = "section_not_found"
)

// ErrInvalidCredentials covers both unknown email and wrong password. The
// message is identical in both cases so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("Invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMissing is returned when a protected route receives no bearer token.
var ErrTokenMissing = errors.New("No token provided", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMissing).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a bearer token is past its expiry.
var ErrTokenExpired = errors.New("Invalid or expired token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers bad signatures, wrong algorithms, and garbage
// tokens. Outwardly identical to ErrTokenExpired.
var ErrTokenMalformed = errors.New("Invalid or expired token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrNotAuthorized is the single ownership failure. A target that does not
// exist and a target owned by someone else produce the same error, so the
// response never reveals whether the company exists.
var ErrNotAuthorized = errors.New("Not authorized", errors.CategoryAuthz).
	WithTextCode(TextCodeNotAuthorized).
	WithCode(errors.CodeForbidden)

// ErrEmailTaken is returned when registration hits an existing email.
var ErrEmailTaken = errors.New("Email already registered", errors.CategoryValidation).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeBadRequest)

// ErrDuplicateSlug surfaces a storage-level uniqueness violation on a slug
// insert. The allocator retries once with a timestamp-suffixed candidate on
// this specific failure.
var ErrDuplicateSlug = errors.New("slug already in use", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateSlug).
	WithCode(errors.CodeConflict)

var ErrCompanyNotFound = errors.New("Company not found", errors.CategoryNotFound).
	WithTextCode(TextCodeCompanyNotFound).
	WithCode(errors.CodeNotFound)

var ErrThemeNotFound = errors.New("Theme not found", errors.CategoryNotFound).
	WithTextCode(TextCodeThemeNotFound).
	WithCode(errors.CodeNotFound)

var ErrJobNotFound = errors.New("Job not found", errors.CategoryNotFound).
	WithTextCode(TextCodeJobNotFound).
	WithCode(errors.CodeNotFound)

var ErrSectionNotFound = errors.New("Section not found", errors.CategoryNotFound).
	WithTextCode(TextCodeSectionNotFound).
	WithCode(errors.CodeNotFound)

// IsDuplicateSlug reports whether err is the allocator conflict signal.
func IsDuplicateSlug(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.TextCode == TextCodeDuplicateSlug
	}
	return false
}

// IsUniqueViolation detects a unique-constraint failure from the storage
// driver. Both the sqlite and postgres drivers only expose this through the
// error text.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
