package ledger

import (
	"database/sql"

	"github.com/dsakenov/minebudget/internal/model"
)

// RecordCorrection inserts a correction row and overwrites the
// project's base budget with newBudget. Both writes happen in one
// transaction; a correction without the budget overwrite (or the
// reverse) would corrupt the ledger.
func (s *Store) RecordCorrection(projectID int64, newBudget float64, date model.Date, note, addedBy string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, storageErr("recording correction", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		"INSERT INTO corrections (project_id, new_budget, date, note, added_by) VALUES (?, ?, ?, ?, ?)",
		projectID, newBudget, string(date), note, s.addedBy(addedBy),
	)
	if err != nil {
		return 0, storageErr("recording correction", err)
	}
	if _, err := tx.Exec("UPDATE projects SET budget=? WHERE id=?", newBudget, projectID); err != nil {
		return 0, storageErr("applying correction", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("recording correction", err)
	}
	return id, storageErr("recording correction", tx.Commit())
}

// GetCorrection returns the correction or nil when absent.
func (s *Store) GetCorrection(id int64) (*model.Correction, error) {
	row := s.db.QueryRow(
		"SELECT id, project_id, new_budget, date, note, added_by FROM corrections WHERE id=?", id)
	c, err := scanCorrection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("reading correction", err)
	}
	return &c, nil
}

// ListCorrections returns all corrections for a project.
func (s *Store) ListCorrections(projectID int64) ([]model.Correction, error) {
	rows, err := s.db.Query(
		"SELECT id, project_id, new_budget, date, note, added_by FROM corrections WHERE project_id=?", projectID)
	if err != nil {
		return nil, storageErr("listing corrections", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Correction
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, storageErr("scanning correction", err)
		}
		out = append(out, c)
	}
	return out, storageErr("listing corrections", rows.Err())
}

// UpdateCorrection edits a correction row and then re-syncs the
// project's budget to its newest correction by (date, id). The base
// budget therefore always tracks the chronologically latest correction,
// not whichever row was edited last.
func (s *Store) UpdateCorrection(id int64, newBudget float64, date model.Date, note string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("updating correction", err)
	}
	defer func() { _ = tx.Rollback() }()

	var projectID int64
	err = tx.QueryRow("SELECT project_id FROM corrections WHERE id=?", id).Scan(&projectID)
	if err == sql.ErrNoRows {
		return validationf("correction %d not found", id)
	}
	if err != nil {
		return storageErr("updating correction", err)
	}

	if _, err := tx.Exec(
		"UPDATE corrections SET new_budget=?, date=?, note=? WHERE id=?",
		newBudget, string(date), note, id,
	); err != nil {
		return storageErr("updating correction", err)
	}

	var latest float64
	err = tx.QueryRow(
		"SELECT new_budget FROM corrections WHERE project_id=? ORDER BY date DESC, id DESC LIMIT 1",
		projectID,
	).Scan(&latest)
	if err != nil {
		return storageErr("updating correction", err)
	}
	if _, err := tx.Exec("UPDATE projects SET budget=? WHERE id=?", latest, projectID); err != nil {
		return storageErr("applying correction", err)
	}
	return storageErr("updating correction", tx.Commit())
}

// DeleteCorrection removes the row. The project budget is deliberately
// left untouched: the overwrite already happened and the remaining
// correction rows are the only audit trail.
func (s *Store) DeleteCorrection(id int64) error {
	_, err := s.db.Exec("DELETE FROM corrections WHERE id=?", id)
	return storageErr("deleting correction", err)
}

func scanCorrection(row interface{ Scan(...any) error }) (model.Correction, error) {
	var c model.Correction
	var date string
	var note, addedBy sql.NullString
	err := row.Scan(&c.ID, &c.ProjectID, &c.NewBudget, &date, &note, &addedBy)
	if err != nil {
		return c, err
	}
	c.Date = model.Date(date)
	c.Note = note.String
	c.AddedBy = addedBy.String
	return c, nil
}
