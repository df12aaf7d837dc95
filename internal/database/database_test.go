package database

import (
	"context"
	"testing"
)

func TestOpenRunsMigrations(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM local_storage`).Scan(&count)
	if err != nil {
		t.Fatalf("query local_storage: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty table, got %d rows", count)
	}
}

func TestOpenDriverUnsupported(t *testing.T) {
	if _, err := OpenDriver(context.Background(), "oracle", "x", Options{}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
