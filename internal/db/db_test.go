package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func columnExists(t *testing.T, database *sql.DB, table, column string) bool {
	t.Helper()
	var count int
	err := database.QueryRow("SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column).Scan(&count)
	if err != nil {
		t.Fatalf("failed to inspect %s: %v", table, err)
	}
	return count > 0
}

func TestOpen_FreshDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	if !columnExists(t, database, "settings", "updated_at") {
		t.Error("expected settings.updated_at column")
	}

	var version int
	if err := database.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("schema version = %d, want %d", version, len(migrations))
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := first.Exec("INSERT INTO settings (key, value) VALUES ('k', 'v')"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	var value string
	if err := second.QueryRow("SELECT value FROM settings WHERE key = 'k'").Scan(&value); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if value != "v" {
		t.Errorf("value = %q, want v", value)
	}
}

func TestInitSchema_MigratesLegacyTable(t *testing.T) {
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	database.SetMaxOpenConns(1)
	defer database.Close()

	if _, err := database.Exec("CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL)"); err != nil {
		t.Fatalf("failed to create legacy table: %v", err)
	}
	if _, err := database.Exec("INSERT INTO settings (key, value) VALUES ('show_experimental_protocols', 'true')"); err != nil {
		t.Fatalf("failed to seed legacy row: %v", err)
	}

	if err := InitSchema(database); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}
	if !columnExists(t, database, "settings", "updated_at") {
		t.Error("expected updated_at after migration")
	}

	var updatedAt sql.NullString
	if err := database.QueryRow("SELECT updated_at FROM settings WHERE key = 'show_experimental_protocols'").Scan(&updatedAt); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if !updatedAt.Valid {
		t.Error("expected legacy row to be stamped")
	}

	// Running again is a no-op.
	if err := InitSchema(database); err != nil {
		t.Fatalf("second InitSchema failed: %v", err)
	}
}
