package ledger

import (
	"database/sql"

	"github.com/dsakenov/minebudget/internal/model"
)

const contractCols = "id, project_id, amount, date, contractor, file_path, note, added_by"

// RecordContract inserts a committed contract amount. Contracts outrank
// marketing estimates when deriving required funds.
func (s *Store) RecordContract(projectID int64, amount float64, date model.Date, contractor, filePath, note, addedBy string) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO contracts (project_id, amount, date, contractor, file_path, note, added_by) VALUES (?, ?, ?, ?, ?, ?, ?)",
		projectID, amount, string(date), nullableText(contractor), nullableText(filePath), note, s.addedBy(addedBy),
	)
	if err != nil {
		return 0, storageErr("recording contract", err)
	}
	id, err := res.LastInsertId()
	return id, storageErr("recording contract", err)
}

// GetContract returns the record or nil when absent.
func (s *Store) GetContract(id int64) (*model.Contract, error) {
	row := s.db.QueryRow("SELECT "+contractCols+" FROM contracts WHERE id=?", id)
	c, err := scanContract(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("reading contract", err)
	}
	return &c, nil
}

// ListContracts returns all contracts for a project.
func (s *Store) ListContracts(projectID int64) ([]model.Contract, error) {
	rows, err := s.db.Query("SELECT "+contractCols+" FROM contracts WHERE project_id=?", projectID)
	if err != nil {
		return nil, storageErr("listing contracts", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, storageErr("scanning contract", err)
		}
		out = append(out, c)
	}
	return out, storageErr("listing contracts", rows.Err())
}

// LastContract returns the project's latest contract by (date, id), or
// nil. Ties on date go to the highest id, i.e. most recently inserted.
func (s *Store) LastContract(projectID int64) (*model.Contract, error) {
	row := s.db.QueryRow(
		"SELECT "+contractCols+" FROM contracts WHERE project_id=? ORDER BY date DESC, id DESC LIMIT 1",
		projectID)
	c, err := scanContract(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("reading contract", err)
	}
	return &c, nil
}

// UpdateContract edits an existing record in place.
func (s *Store) UpdateContract(id int64, amount float64, date model.Date, contractor, filePath, note string) error {
	_, err := s.db.Exec(
		"UPDATE contracts SET amount=?, date=?, contractor=?, file_path=?, note=? WHERE id=?",
		amount, string(date), nullableText(contractor), nullableText(filePath), note, id,
	)
	return storageErr("updating contract", err)
}

// DeleteContract removes the record.
func (s *Store) DeleteContract(id int64) error {
	_, err := s.db.Exec("DELETE FROM contracts WHERE id=?", id)
	return storageErr("deleting contract", err)
}

func scanContract(row interface{ Scan(...any) error }) (model.Contract, error) {
	var c model.Contract
	var date string
	var contractor, filePath, note, addedBy sql.NullString
	err := row.Scan(&c.ID, &c.ProjectID, &c.Amount, &date, &contractor, &filePath, &note, &addedBy)
	if err != nil {
		return c, err
	}
	c.Date = model.Date(date)
	c.Contractor = contractor.String
	c.FilePath = filePath.String
	c.Note = note.String
	c.AddedBy = addedBy.String
	return c, nil
}
