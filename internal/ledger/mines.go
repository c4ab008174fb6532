package ledger

import (
	"database/sql"
	"strings"

	"github.com/dsakenov/minebudget/internal/model"
)

// ListMines returns all mines ordered by name.
func (s *Store) ListMines() ([]model.Mine, error) {
	rows, err := s.db.Query("SELECT id, name FROM mines ORDER BY name")
	if err != nil {
		return nil, storageErr("listing mines", err)
	}
	defer func() { _ = rows.Close() }()

	var mines []model.Mine
	for rows.Next() {
		var m model.Mine
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, storageErr("scanning mine", err)
		}
		mines = append(mines, m)
	}
	return mines, storageErr("listing mines", rows.Err())
}

// ListSections returns sections, filtered to one mine when mineID is
// non-nil.
func (s *Store) ListSections(mineID *int64) ([]model.Section, error) {
	var rows *sql.Rows
	var err error
	if mineID != nil {
		rows, err = s.db.Query("SELECT id, mine_id, name FROM sections WHERE mine_id=? ORDER BY name", *mineID)
	} else {
		rows, err = s.db.Query("SELECT id, mine_id, name FROM sections ORDER BY mine_id, name")
	}
	if err != nil {
		return nil, storageErr("listing sections", err)
	}
	defer func() { _ = rows.Close() }()

	var sections []model.Section
	for rows.Next() {
		var sec model.Section
		if err := rows.Scan(&sec.ID, &sec.MineID, &sec.Name); err != nil {
			return nil, storageErr("scanning section", err)
		}
		sections = append(sections, sec)
	}
	return sections, storageErr("listing sections", rows.Err())
}

// CreateMine inserts a mine and returns its id. Names are unique.
func (s *Store) CreateMine(name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, validationf("mine name must not be empty")
	}
	res, err := s.db.Exec("INSERT INTO mines (name) VALUES (?)", name)
	if err != nil {
		return 0, storageErr("creating mine", err)
	}
	id, err := res.LastInsertId()
	return id, storageErr("creating mine", err)
}

// UpdateMine renames a mine.
func (s *Store) UpdateMine(id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationf("mine name must not be empty")
	}
	_, err := s.db.Exec("UPDATE mines SET name=? WHERE id=?", name, id)
	return storageErr("renaming mine", err)
}

// DeleteMine removes a mine, its sections, and nulls every reference to
// them from projects and service contracts.
func (s *Store) DeleteMine(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("deleting mine", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("UPDATE projects SET mine_id=NULL, section_id=NULL WHERE mine_id=?", id); err != nil {
		// The projects table is absent on services-flavor files.
		if classifyStorage(err) != StorageMissingTable {
			return storageErr("unlinking projects", err)
		}
	}
	if _, err := tx.Exec("UPDATE service_contracts SET mine_id=NULL, section_id=NULL WHERE mine_id=?", id); err != nil {
		if classifyStorage(err) != StorageMissingTable {
			return storageErr("unlinking service contracts", err)
		}
	}
	if _, err := tx.Exec("DELETE FROM sections WHERE mine_id=?", id); err != nil {
		return storageErr("deleting sections", err)
	}
	if _, err := tx.Exec("DELETE FROM mines WHERE id=?", id); err != nil {
		return storageErr("deleting mine", err)
	}
	return storageErr("deleting mine", tx.Commit())
}

// MineName returns the mine's name, or "" for nil/unknown ids.
func (s *Store) MineName(id *int64) (string, error) {
	if id == nil {
		return "", nil
	}
	var name string
	err := s.db.QueryRow("SELECT name FROM mines WHERE id=?", *id).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", storageErr("reading mine name", err)
	}
	return name, nil
}

// CreateSection inserts a section under a mine and returns its id.
func (s *Store) CreateSection(mineID int64, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, validationf("section name must not be empty")
	}
	res, err := s.db.Exec("INSERT INTO sections (mine_id, name) VALUES (?, ?)", mineID, name)
	if err != nil {
		return 0, storageErr("creating section", err)
	}
	id, err := res.LastInsertId()
	return id, storageErr("creating section", err)
}

// UpdateSection moves/renames a section.
func (s *Store) UpdateSection(id, mineID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationf("section name must not be empty")
	}
	_, err := s.db.Exec("UPDATE sections SET mine_id=?, name=? WHERE id=?", mineID, name, id)
	return storageErr("updating section", err)
}

// DeleteSection removes a section and nulls references to it. The
// parent mine is untouched.
func (s *Store) DeleteSection(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("deleting section", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("UPDATE projects SET section_id=NULL WHERE section_id=?", id); err != nil {
		if classifyStorage(err) != StorageMissingTable {
			return storageErr("unlinking projects", err)
		}
	}
	if _, err := tx.Exec("UPDATE service_contracts SET section_id=NULL WHERE section_id=?", id); err != nil {
		if classifyStorage(err) != StorageMissingTable {
			return storageErr("unlinking service contracts", err)
		}
	}
	if _, err := tx.Exec("DELETE FROM sections WHERE id=?", id); err != nil {
		return storageErr("deleting section", err)
	}
	return storageErr("deleting section", tx.Commit())
}

// SectionName returns the section's name, or "" for nil/unknown ids.
func (s *Store) SectionName(id *int64) (string, error) {
	if id == nil {
		return "", nil
	}
	var name string
	err := s.db.QueryRow("SELECT name FROM sections WHERE id=?", *id).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", storageErr("reading section name", err)
	}
	return name, nil
}
