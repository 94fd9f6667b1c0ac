package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemoryAppliesSchema(t *testing.T) {
	database, err := OpenMemory()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	var version int
	if err := database.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		t.Fatalf("schema_version: %v", err)
	}
	if version != len(migrations) {
		t.Fatalf("expected version %d, got %d", len(migrations), version)
	}

	// Migrations are idempotent
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("second run: %v", err)
	}
}

func TestOpenMemoryIsPrivate(t *testing.T) {
	a, err := OpenMemory()
	if err != nil {
		t.Fatalf("open a: %v", err)
	}
	defer a.Close()
	b, err := OpenMemory()
	if err != nil {
		t.Fatalf("open b: %v", err)
	}
	defer b.Close()

	if _, err := a.Exec(`INSERT INTO clients (id, gender, name, company, age, registered, currency, subscription_cost)
		VALUES ('x', 'male', 'A', 'B', 30, '2020-01-01T00:00:00Z', 'USD', '1.00')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var n int
	if err := b.QueryRow("SELECT COUNT(*) FROM clients").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected independent databases, got %d rows in b", n)
	}
}

func TestAgeConstraint(t *testing.T) {
	database, err := OpenMemory()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	_, err = database.Exec(`INSERT INTO clients (id, gender, name, company, age, registered, currency, subscription_cost)
		VALUES ('x', 'male', 'A', 'B', 121, '2020-01-01T00:00:00Z', 'USD', '1.00')`)
	if err == nil {
		t.Fatalf("expected CHECK constraint to reject age 121")
	}
}

func TestEncryptedFileRequiresKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "roster.db")

	database, err := Open(path, "correct horse")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.Close()

	reopened, err := Open(path, "correct horse")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	var n int
	if err := reopened.QueryRow("SELECT COUNT(*) FROM clients").Scan(&n); err != nil {
		t.Fatalf("query with key: %v", err)
	}
	reopened.Close()

	wrong, err := Open(path, "wrong key")
	if err != nil {
		return // rejected at open
	}
	defer wrong.Close()
	if err := wrong.QueryRow("SELECT COUNT(*) FROM clients").Scan(&n); err == nil {
		t.Fatalf("expected wrong key to fail")
	}
}
