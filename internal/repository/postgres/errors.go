package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"assembl/internal/domain"

	"github.com/lib/pq"
)

const (
	uniqueViolation pq.ErrorCode = "23505"

	// Default name Postgres gives UNIQUE (description) on photos
	descriptionConstraint = "photos_description_key"
)

// storeError classifies err for op
func storeError(op domain.Op, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == descriptionConstraint {
		return domain.NewStoreError(op, domain.KindDuplicateDescription, err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewStoreError(op, domain.KindNotFound, err)
	}
	return domain.NewStoreError(op, domain.KindPersistence, err)
}

// nullString stores empty strings as NULL
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching q anywhere
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// expectAffected turns a zero-row update into a not-found error
func expectAffected(op domain.Op, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeError(op, err)
	}
	if n == 0 {
		return domain.NewStoreError(op, domain.KindNotFound, domain.ErrNotFound)
	}
	return nil
}
