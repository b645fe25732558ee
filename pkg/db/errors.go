package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation. Postgres names the violated constraint, so a supplied
// constraintName narrows which postgres violation matches. SQLite reports
// "UNIQUE constraint failed: table.column" with no constraint name, so its
// phrasing matches regardless.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return true
	}
	if !strings.Contains(msg, "duplicate key value") {
		return false
	}
	return constraintName == "" || strings.Contains(msg, constraintName)
}
