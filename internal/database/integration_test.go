package database

import (
	"errors"
	"path/filepath"
	"testing"
)

const testMigrationsPath = "../../migrations"

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(testMigrationsPath); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)

	for _, table := range []string{"migrations", "profiles", "parent_controls"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// Running again must be a no-op
	if err := db.RunMigrations(testMigrationsPath); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 recorded migrations, got %d", count)
	}
}

func TestRunMigrationsMissingDirectory(t *testing.T) {
	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(t.TempDir()); err == nil {
		t.Error("expected error when no migration files exist")
	}
}

func TestWithTx(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	insert := "INSERT INTO profiles (id, name, age_group, sort_order) VALUES (?, ?, ?, ?)"

	err := db.WithTx(func(tx *Tx) error {
		_, err := tx.Exec(insert, "child-1", "Aarav", "4-6", 1)
		return err
	})
	if err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	boom := errors.New("boom")
	err = db.WithTx(func(tx *Tx) error {
		if _, err := tx.Exec(insert, "child-2", "Diya", "10-12", 2); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx error = %v, want boom", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count); err != nil {
		t.Fatalf("Failed to count profiles: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 profile after rollback, got %d", count)
	}
}
