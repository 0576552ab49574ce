package utils

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestParseDurationEnv(t *testing.T) {
	cases := map[string]time.Duration{
		"10":      10 * time.Second,
		`"5m"`:    5 * time.Minute,
		"'250ms'": 250 * time.Millisecond,
		" 3s ":    3 * time.Second,
	}
	for in, want := range cases {
		got, err := ParseDurationEnv(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: want %s, got %s", in, want, got)
		}
	}
}

func TestParseDurationEnvRejectsGarbage(t *testing.T) {
	for _, in := range []string{"soon", "  ", `""`} {
		if _, err := ParseDurationEnv(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestNormalizeTaskText(t *testing.T) {
	if got, ok := NormalizeTaskText("  Buy milk \n"); !ok || got != "Buy milk" {
		t.Fatalf("got %q %v", got, ok)
	}
	for _, in := range []string{"", "   ", "\t\n"} {
		if _, ok := NormalizeTaskText(in); ok {
			t.Fatalf("%q should be rejected", in)
		}
	}
}

func TestPGErrorCodes(t *testing.T) {
	check := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23514"})
	if !IsPGCheckViolation(check) {
		t.Fatal("wrapped 23514 should be a check violation")
	}
	if IsPGCheckViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violation is not a check violation")
	}
	if !IsPGUndefinedTable(&pgconn.PgError{Code: "42P01"}) {
		t.Fatal("42P01 is an undefined table")
	}
	if PGCode(errors.New("boom")) != "" {
		t.Fatal("plain error has no code")
	}
}
