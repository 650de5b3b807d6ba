package db

import (
	"strings"
	"testing"
)

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	got := Config{SQLitePath: "file:x?mode=memory&cache=shared"}.sqliteDSN()
	if !strings.Contains(got, "&_foreign_keys=on") {
		t.Fatalf("expected foreign keys flag appended, got %q", got)
	}
	got = Config{SQLitePath: "file:y.db"}.sqliteDSN()
	if !strings.HasPrefix(got, "file:y.db?_foreign_keys=on") {
		t.Fatalf("unexpected dsn %q", got)
	}
	got = Config{SQLitePath: "file:z.db?_foreign_keys=off"}.sqliteDSN()
	if got != "file:z.db?_foreign_keys=off" {
		t.Fatalf("explicit flag must be kept, got %q", got)
	}
}

func TestPostgresDSNDefaultsSSLMode(t *testing.T) {
	got := Config{PostgresUser: "u", PostgresPassword: "p", PostgresHost: "h", PostgresPort: "5432", PostgresName: "n"}.postgresDSN()
	if got != "postgres://u:p@h:5432/n?sslmode=disable" {
		t.Fatalf("unexpected dsn %q", got)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle"}, testLogger(t)); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
