package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the service reacts to.
const (
	pgCheckViolation = "23514"
	pgUndefinedTable = "42P01"
)

// ParseDurationEnv accepts "10s", "5m" or a bare number of seconds.
// Surrounding quotes, as left by some .env loaders, are ignored.
func ParseDurationEnv(raw string) (time.Duration, error) {
	s := strings.Trim(strings.TrimSpace(raw), `"'`)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration %q: want 10s, 5m or seconds: %w", raw, err)
	}
	return d, nil
}

// NormalizeTaskText trims text and reports whether anything is left.
// Client and service share it so both reject the same input.
func NormalizeTaskText(text string) (string, bool) {
	text = strings.TrimSpace(text)
	return text, text != ""
}

// PGCode returns the SQLSTATE of a wrapped *pgconn.PgError, or "".
func PGCode(err error) string {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code
	}
	return ""
}

// IsPGCheckViolation reports a CHECK constraint failure, e.g. blank task text.
func IsPGCheckViolation(err error) bool { return PGCode(err) == pgCheckViolation }

// IsPGUndefinedTable reports a query against a table that does not exist,
// which usually means migrations did not run.
func IsPGUndefinedTable(err error) bool { return PGCode(err) == pgUndefinedTable }
