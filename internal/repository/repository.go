// internal/repository/repository.go
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ListParams holds paging, ordering and equality filters for list queries.
// Filter keys must be column names vetted by the caller.
type ListParams struct {
	Limit   int
	Offset  int
	Filters map[string]any
}

const (
	defaultLimit = 50
	maxLimit     = 500
)

func (p ListParams) limit() int {
	switch {
	case p.Limit <= 0:
		return defaultLimit
	case p.Limit > maxLimit:
		return maxLimit
	default:
		return p.Limit
	}
}

// ApplyScope restricts db to the rows a visibility scope admits. ownerCol is
// the owner expression of the queried model.
func ApplyScope(db *gorm.DB, scope policy.Scope, ownerCol string) *gorm.DB {
	if scope.All {
		return db
	}

	var (
		clauses []string
		args    []any
	)
	if len(scope.Owners) > 0 {
		clauses = append(clauses, ownerCol+" IN ?")
		args = append(args, scope.Owners)
	}
	if scope.Unowned {
		clauses = append(clauses, ownerCol+" IS NULL")
	}
	if len(scope.Referenced) > 0 {
		clauses = append(clauses, "id IN ?")
		args = append(args, scope.Referenced)
	}
	if len(clauses) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func wrapNotFound(err error, notFound error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
