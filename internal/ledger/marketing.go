package ledger

import (
	"database/sql"

	"github.com/dsakenov/minebudget/internal/model"
)

const marketingCols = "id, project_id, amount, date, file_path, note, added_by"

// RecordMarketing inserts a marketing estimate. Marketing never touches
// available funds; it only raises the project's required funds.
func (s *Store) RecordMarketing(projectID int64, amount float64, date model.Date, filePath, note, addedBy string) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO marketing (project_id, amount, date, file_path, note, added_by) VALUES (?, ?, ?, ?, ?, ?)",
		projectID, amount, string(date), nullableText(filePath), note, s.addedBy(addedBy),
	)
	if err != nil {
		return 0, storageErr("recording marketing", err)
	}
	id, err := res.LastInsertId()
	return id, storageErr("recording marketing", err)
}

// GetMarketing returns the record or nil when absent.
func (s *Store) GetMarketing(id int64) (*model.Marketing, error) {
	row := s.db.QueryRow("SELECT "+marketingCols+" FROM marketing WHERE id=?", id)
	m, err := scanMarketing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("reading marketing", err)
	}
	return &m, nil
}

// ListMarketing returns all marketing records for a project.
func (s *Store) ListMarketing(projectID int64) ([]model.Marketing, error) {
	rows, err := s.db.Query("SELECT "+marketingCols+" FROM marketing WHERE project_id=?", projectID)
	if err != nil {
		return nil, storageErr("listing marketing", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Marketing
	for rows.Next() {
		m, err := scanMarketing(rows)
		if err != nil {
			return nil, storageErr("scanning marketing", err)
		}
		out = append(out, m)
	}
	return out, storageErr("listing marketing", rows.Err())
}

// LastMarketing returns the project's latest marketing record by
// (date, id), or nil. Used to pre-fill repeat entry.
func (s *Store) LastMarketing(projectID int64) (*model.Marketing, error) {
	row := s.db.QueryRow(
		"SELECT "+marketingCols+" FROM marketing WHERE project_id=? ORDER BY date DESC, id DESC LIMIT 1",
		projectID)
	m, err := scanMarketing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("reading marketing", err)
	}
	return &m, nil
}

// UpdateMarketing edits an existing record in place.
func (s *Store) UpdateMarketing(id int64, amount float64, date model.Date, filePath, note string) error {
	_, err := s.db.Exec(
		"UPDATE marketing SET amount=?, date=?, file_path=?, note=? WHERE id=?",
		amount, string(date), nullableText(filePath), note, id,
	)
	return storageErr("updating marketing", err)
}

// DeleteMarketing removes the record. Status values are derived on
// demand, so the deletion is visible on the next query.
func (s *Store) DeleteMarketing(id int64) error {
	_, err := s.db.Exec("DELETE FROM marketing WHERE id=?", id)
	return storageErr("deleting marketing", err)
}

func scanMarketing(row interface{ Scan(...any) error }) (model.Marketing, error) {
	var m model.Marketing
	var date string
	var filePath, note, addedBy sql.NullString
	err := row.Scan(&m.ID, &m.ProjectID, &m.Amount, &date, &filePath, &note, &addedBy)
	if err != nil {
		return m, err
	}
	m.Date = model.Date(date)
	m.FilePath = filePath.String
	m.Note = note.String
	m.AddedBy = addedBy.String
	return m, nil
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
