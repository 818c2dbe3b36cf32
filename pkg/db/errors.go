package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// violation constraint. When constraintName is provided, the helper looks for
// the constraint text in the error message. The sqlite fallback covers the
// in-memory databases used by repository tests.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
