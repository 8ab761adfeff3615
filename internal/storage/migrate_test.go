package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open(DriverCGO, dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("migrate up must be idempotent: %v", err)
	}
	if err := MigrateDown(ctx, db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	kv, err := NewSQLiteKV(ctx, db, Options{})
	if err != nil {
		t.Fatalf("new kv: %v", err)
	}
	if err := kv.Set(ctx, "todos", `[]`); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}
	got, ok, err := kv.Get(ctx, "todos")
	if err != nil || !ok || got != `[]` {
		t.Fatalf("unexpected value after roundtrip: %q ok=%v err=%v", got, ok, err)
	}
}
