package ledger

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dsakenov/minebudget/internal/model"
)

// writeV0File builds a data file with the original schema: no
// out_of_budget/mine_id/section_id on projects, no added_by on event
// tables, and no schema_version key.
func writeV0File(t *testing.T, path string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}
	defer db.Close()

	stmts := []string{
		"CREATE TABLE _meta (key TEXT PRIMARY KEY, value TEXT)",
		"INSERT INTO _meta (key, value) VALUES ('db_type', 'invest')",
		`CREATE TABLE projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			budget REAL NOT NULL DEFAULT 0,
			comment TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE corrections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL,
			new_budget REAL NOT NULL,
			date TEXT NOT NULL,
			note TEXT
		)`,
		`CREATE TABLE marketing (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL,
			amount REAL NOT NULL,
			date TEXT NOT NULL,
			file_path TEXT,
			note TEXT
		)`,
		`CREATE TABLE contracts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL,
			amount REAL NOT NULL,
			date TEXT NOT NULL,
			contractor TEXT,
			file_path TEXT,
			note TEXT
		)`,
		`CREATE TABLE revisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_project_id INTEGER NOT NULL,
			target_project_id INTEGER NOT NULL,
			amount REAL NOT NULL,
			date TEXT NOT NULL,
			note TEXT
		)`,
		"INSERT INTO projects (name, budget, created_at) VALUES ('Legacy dig', 42000, '2024-05-01')",
		"INSERT INTO corrections (project_id, new_budget, date) VALUES (1, 42000, '2024-06-01')",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}

func TestMigrate_V0ToCurrent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.db")
	writeV0File(t, path)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open v0 file: %v", err)
	}
	defer s.Close()

	v, err := s.schemaVersionMeta()
	if err != nil {
		t.Fatalf("schemaVersionMeta: %v", err)
	}
	if v != schemaVersion {
		t.Errorf("schema version = %d, want %d", v, schemaVersion)
	}

	// Old rows survive and read cleanly through the new columns.
	p, err := s.GetProject(1)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if p == nil || p.Name != "Legacy dig" || p.Budget != 42000 {
		t.Fatalf("project = %+v", p)
	}
	if p.OutOfBudget || p.MineID != nil || p.SectionID != nil {
		t.Errorf("new columns not defaulted: %+v", p)
	}

	list, err := s.ListCorrections(1)
	if err != nil {
		t.Fatalf("ListCorrections: %v", err)
	}
	if len(list) != 1 || list[0].AddedBy != "" {
		t.Errorf("corrections = %+v, want one with empty added_by", list)
	}

	// New columns are writable.
	if err := s.UpdateProjectOutOfBudget(1, true); err != nil {
		t.Fatalf("UpdateProjectOutOfBudget: %v", err)
	}
	if _, err := s.RecordCorrection(1, 43000, model.Date("2026-01-01"), "", "auditor"); err != nil {
		t.Fatalf("RecordCorrection post-migration: %v", err)
	}
}

func TestMigrate_BackupTaken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.db")
	writeV0File(t, path)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	backups, err := filepath.Glob(path + ".backup_*")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(backups) == 0 {
		t.Error("no backup file next to the migrated data file")
	}
}

func TestMigrate_ReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.db")
	writeV0File(t, path)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	backups, _ := filepath.Glob(path + ".backup_*")
	before := len(backups)

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	// A fully migrated file must not be backed up again.
	backups, _ = filepath.Glob(path + ".backup_*")
	if len(backups) != before {
		t.Errorf("backup count grew %d -> %d on reopen", before, len(backups))
	}
}

func TestMigrate_NewerFileRejected(t *testing.T) {
	s := newTestStore(t)
	if err := s.setMeta("schema_version", "99"); err != nil {
		t.Fatalf("setMeta: %v", err)
	}
	if err := s.migrate(); err == nil {
		t.Error("migrate accepted a file newer than supported")
	}
}
