package ledger

import (
	"database/sql"

	"github.com/dsakenov/minebudget/internal/model"
)

// fundsEpsilon absorbs floating-point drift when checking whether a
// source project can cover a transfer.
const fundsEpsilon = 1e-6

const revisionCols = "id, source_project_id, target_project_id, amount, date, note, added_by"

// RecordRevision transfers amount from the source project to the target
// project. The source's available funds (base budget plus net transfers)
// are checked and the row inserted inside a single transaction, so two
// racing revisions cannot both read sufficient funds and overdraw the
// source. Nothing else is written: have values are always derived.
func (s *Store) RecordRevision(sourceID, targetID int64, amount float64, date model.Date, note, addedBy string) (int64, error) {
	if sourceID == targetID {
		return 0, validationf("cannot transfer a project's funds to itself")
	}
	if amount <= 0 {
		return 0, validationf("revision amount must be greater than zero")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, storageErr("recording revision", err)
	}
	defer func() { _ = tx.Rollback() }()

	available, err := availableFundsTx(tx, sourceID)
	if err != nil {
		return 0, err
	}
	if amount-available > fundsEpsilon {
		return 0, &InsufficientFundsError{ProjectID: sourceID, Available: available, Requested: amount}
	}

	res, err := tx.Exec(
		"INSERT INTO revisions (source_project_id, target_project_id, amount, date, note, added_by) VALUES (?, ?, ?, ?, ?, ?)",
		sourceID, targetID, amount, string(date), note, s.addedBy(addedBy),
	)
	if err != nil {
		return 0, storageErr("recording revision", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("recording revision", err)
	}
	return id, storageErr("recording revision", tx.Commit())
}

// availableFundsTx computes have = base + revIn - revOut for one
// project, within the caller's transaction.
func availableFundsTx(tx *sql.Tx, projectID int64) (float64, error) {
	var base float64
	err := tx.QueryRow("SELECT budget FROM projects WHERE id=?", projectID).Scan(&base)
	if err == sql.ErrNoRows {
		base = 0
	} else if err != nil {
		return 0, storageErr("reading project budget", err)
	}

	var in, out float64
	if err := tx.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM revisions WHERE target_project_id=?", projectID,
	).Scan(&in); err != nil {
		return 0, storageErr("summing incoming revisions", err)
	}
	if err := tx.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM revisions WHERE source_project_id=?", projectID,
	).Scan(&out); err != nil {
		return 0, storageErr("summing outgoing revisions", err)
	}
	return base + in - out, nil
}

// RevisionTotals returns the project's summed incoming and outgoing
// transfer amounts.
func (s *Store) RevisionTotals(projectID int64) (in, out float64, err error) {
	if err := s.db.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM revisions WHERE target_project_id=?", projectID,
	).Scan(&in); err != nil {
		return 0, 0, storageErr("summing incoming revisions", err)
	}
	if err := s.db.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM revisions WHERE source_project_id=?", projectID,
	).Scan(&out); err != nil {
		return 0, 0, storageErr("summing outgoing revisions", err)
	}
	return in, out, nil
}

// GetRevision returns the revision or nil when absent.
func (s *Store) GetRevision(id int64) (*model.Revision, error) {
	row := s.db.QueryRow("SELECT "+revisionCols+" FROM revisions WHERE id=?", id)
	r, err := scanRevision(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("reading revision", err)
	}
	return &r, nil
}

// ListRevisionsIn returns revisions whose target is the project.
func (s *Store) ListRevisionsIn(projectID int64) ([]model.Revision, error) {
	return s.listRevisions("SELECT "+revisionCols+" FROM revisions WHERE target_project_id=?", projectID)
}

// ListRevisionsOut returns revisions whose source is the project.
func (s *Store) ListRevisionsOut(projectID int64) ([]model.Revision, error) {
	return s.listRevisions("SELECT "+revisionCols+" FROM revisions WHERE source_project_id=?", projectID)
}

func (s *Store) listRevisions(query string, args ...any) ([]model.Revision, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("listing revisions", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Revision
	for rows.Next() {
		r, err := scanRevision(rows)
		if err != nil {
			return nil, storageErr("scanning revision", err)
		}
		out = append(out, r)
	}
	return out, storageErr("listing revisions", rows.Err())
}

// LastRevision returns the latest revision touching the project as
// source or target, by (date, id), or nil.
func (s *Store) LastRevision(projectID int64) (*model.Revision, error) {
	row := s.db.QueryRow(
		"SELECT "+revisionCols+` FROM revisions
		 WHERE source_project_id=? OR target_project_id=?
		 ORDER BY date DESC, id DESC LIMIT 1`,
		projectID, projectID)
	r, err := scanRevision(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("reading revision", err)
	}
	return &r, nil
}

// UpdateRevision edits an existing transfer's amount, date, and note.
// Endpoints are immutable; delete and re-record to change them.
func (s *Store) UpdateRevision(id int64, amount float64, date model.Date, note string) error {
	if amount <= 0 {
		return validationf("revision amount must be greater than zero")
	}
	_, err := s.db.Exec(
		"UPDATE revisions SET amount=?, date=?, note=? WHERE id=?",
		amount, string(date), note, id,
	)
	return storageErr("updating revision", err)
}

// DeleteRevision removes the transfer; both endpoints' derived funds
// reflect it on the next status query.
func (s *Store) DeleteRevision(id int64) error {
	_, err := s.db.Exec("DELETE FROM revisions WHERE id=?", id)
	return storageErr("deleting revision", err)
}

func scanRevision(row interface{ Scan(...any) error }) (model.Revision, error) {
	var r model.Revision
	var date string
	var note, addedBy sql.NullString
	err := row.Scan(&r.ID, &r.SourceProjectID, &r.TargetProjectID, &r.Amount, &date, &note, &addedBy)
	if err != nil {
		return r, err
	}
	r.Date = model.Date(date)
	r.Note = note.String
	r.AddedBy = addedBy.String
	return r, nil
}
