package sqlutil

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

func StringToNullString(text string) sql.NullString {
	if text == "" {
		return sql.NullString{Valid: false}
	}

	return sql.NullString{String: text, Valid: true}
}

func NullStringToString(nullString sql.NullString) string {
	if !nullString.Valid {
		return ""
	}

	return nullString.String
}

func NullTimeToString(nullTime sql.NullTime) string {
	if !nullTime.Valid {
		return ""
	}

	return nullTime.Time.String()
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pqError *pq.Error

	if errors.As(err, &pqError) {
		return pqError.Code == "23505"
	}

	return false
}
