package careers

import (
	"database/sql"
	"errors"

	"github.com/goliatone/go-repository-bun"
)

// isNotFound treats the repository's rich not-found error and a raw
// sql.ErrNoRows from a direct bun scan as the same missing row.
func isNotFound(err error) bool {
	return repository.IsRecordNotFound(err) || errors.Is(err, sql.ErrNoRows)
}
