package models

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collation selects how string filters are compared.
type Collation int

const (
	// CollationExact compares strings byte for byte.
	CollationExact Collation = iota
	// CollationCaseInsensitive compares strings ignoring letter case.
	CollationCaseInsensitive
)

// Sort orders a FindAll result by a single column.
type Sort struct {
	Column string
	Desc   bool
}

// SortBy returns an ascending sort on column.
func SortBy(column string) Sort {
	return Sort{Column: column}
}

func applyProjection(query *gorm.DB, fields []string, sort Sort) *gorm.DB {
	if len(fields) > 0 {
		query = query.Select(fields)
	}
	if sort.Column != "" {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: sort.Column},
			Desc:   sort.Desc,
		})
	}
	return query
}

func equalFold(query *gorm.DB, column, value string, collation Collation) *gorm.DB {
	if collation == CollationCaseInsensitive {
		return query.Where("LOWER("+column+") = LOWER(?)", value)
	}
	return query.Where(column+" = ?", value)
}

const pqUniqueViolation = "23505"

func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint") || strings.Contains(message, "duplicate key")
}
