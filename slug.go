package careers

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe identifier from free text: lowercase, runs of
// non-alphanumerics collapsed to single dashes, leading and trailing dashes
// trimmed. Deterministic and lossy.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SuffixSlug appends a high-resolution timestamp so a second allocation of
// the same candidate stays unique without another lookup. The residual
// collision window under extreme concurrency is accepted; the storage
// uniqueness constraint remains the final backstop.
func SuffixSlug(candidate string) string {
	return fmt.Sprintf("%s-%d", candidate, time.Now().UnixNano())
}

// SlugTakenFunc reports whether a slug is occupied within a uniqueness scope:
// the global companies table, or one company's partition of the jobs table.
type SlugTakenFunc func(ctx context.Context, slug string) (bool, error)

// AllocateSlug slugifies text and resolves a collision within the scope by
// suffixing a timestamp. The check and the subsequent row insert must run in
// the same transaction; if the insert still violates the uniqueness
// constraint the caller retries once with the suffixed form (see
// IsDuplicateSlug).
func AllocateSlug(ctx context.Context, text string, taken SlugTakenFunc) (string, error) {
	candidate := Slugify(text)
	occupied, err := taken(ctx, candidate)
	if err != nil {
		return "", err
	}
	if occupied {
		return SuffixSlug(candidate), nil
	}
	return candidate, nil
}
