package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Migrations are additive only (add-column), indexed so migrations[i]
// upgrades a version-i file to version i+1. Each step re-checks column
// existence, so re-running against a half-upgraded file is safe.
var migrations = []func(tx *sql.Tx) error{
	migrateV0toV1,
	migrateV1toV2,
}

// migrate upgrades an invest-flavor file to the current schema version.
// A timestamped full copy of the data file is taken before the first
// step. The whole sequence runs in one transaction so a failed step
// leaves the file at its pre-migration version.
func (s *Store) migrate() error {
	current, err := s.schemaVersionMeta()
	if err != nil {
		return err
	}
	if current > schemaVersion {
		return storageErr("migrating", fmt.Errorf("file schema version %d is newer than supported %d", current, schemaVersion))
	}
	if current == schemaVersion {
		return nil
	}

	s.backupDataFile()

	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("beginning migration", err)
	}
	defer func() { _ = tx.Rollback() }()

	for v := current; v < schemaVersion; v++ {
		if err := migrations[v](tx); err != nil {
			return storageErr(fmt.Sprintf("migrating v%d to v%d", v, v+1), err)
		}
		if err := setSchemaVersionTx(tx, v+1); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return storageErr("committing migration", err)
	}
	return nil
}

func (s *Store) schemaVersionMeta() (int, error) {
	v, err := s.getMeta("schema_version")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func setSchemaVersionTx(tx *sql.Tx, version int) error {
	_, err := tx.Exec(
		"INSERT OR REPLACE INTO _meta (key, value) VALUES ('schema_version', ?)",
		strconv.Itoa(version),
	)
	return storageErr("recording schema version", err)
}

// backupDataFile copies the data file next to itself with a
// .backup_YYYYMMDD_HHMMSS suffix. Best effort: a failed backup does not
// block the migration, matching how operators actually recover (the
// backup is a convenience, the transaction is the guarantee).
func (s *Store) backupDataFile() {
	if _, err := os.Stat(s.path); err != nil {
		return
	}
	stamp := time.Now().Format("20060102_150405")
	_ = copyFile(s.path, s.path+".backup_"+stamp)
}

// migrateV0toV1 adds out_of_budget, mine_id, section_id to projects.
func migrateV0toV1(tx *sql.Tx) error {
	cols, err := tableColumns(tx, "projects")
	if err != nil {
		return err
	}
	if !cols["out_of_budget"] {
		if _, err := tx.Exec("ALTER TABLE projects ADD COLUMN out_of_budget INTEGER NOT NULL DEFAULT 0"); err != nil {
			return err
		}
	}
	if !cols["mine_id"] {
		if _, err := tx.Exec("ALTER TABLE projects ADD COLUMN mine_id INTEGER REFERENCES mines(id)"); err != nil {
			return err
		}
	}
	if !cols["section_id"] {
		if _, err := tx.Exec("ALTER TABLE projects ADD COLUMN section_id INTEGER REFERENCES sections(id)"); err != nil {
			return err
		}
	}
	return nil
}

// migrateV1toV2 adds added_by to every event table.
func migrateV1toV2(tx *sql.Tx) error {
	for _, table := range []string{"corrections", "marketing", "contracts", "revisions"} {
		cols, err := tableColumns(tx, table)
		if err != nil {
			return err
		}
		if cols["added_by"] {
			continue
		}
		if _, err := tx.Exec("ALTER TABLE " + table + " ADD COLUMN added_by TEXT DEFAULT ''"); err != nil {
			return err
		}
	}
	return nil
}

func tableColumns(tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
