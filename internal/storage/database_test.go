package storage

import (
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid path",
			path:    dbPath,
			wantErr: false,
		},
		{
			name:    "invalid path",
			path:    "/invalid/path/to/db.db",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error, got nil")
				}
				if db != nil {
					_ = db.Close()
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error: %v", err)
				return
			}

			if db == nil {
				t.Fatal("New() returned nil database")
			}

			if db.Stats().MaxOpenConnections != 25 {
				t.Errorf("New() MaxOpenConnections = %v, want 25", db.Stats().MaxOpenConnections)
			}

			_ = db.Close()
		})
	}
}

func TestMigrate(t *testing.T) {
	db := newTestDB(t)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", "analysis_results").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check table: %v", err)
	}
	if count != 1 {
		t.Errorf("Migrate() table analysis_results not created")
	}

	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", "idx_analysis_results_submission_id").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check index: %v", err)
	}
	if count != 1 {
		t.Errorf("Migrate() submission index not created")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// newTestDB already migrated once
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() second run error = %v", err)
	}
}
