package ledger

import (
	"database/sql"
	"strings"

	"github.com/dsakenov/minebudget/internal/model"
)

const projectCols = "id, name, budget, comment, created_at, out_of_budget, mine_id, section_id"

func scanProject(row interface{ Scan(...any) error }) (model.Project, error) {
	var p model.Project
	var comment sql.NullString
	var outOfBudget int
	var mineID, sectionID sql.NullInt64
	var created string
	err := row.Scan(&p.ID, &p.Name, &p.Budget, &comment, &created, &outOfBudget, &mineID, &sectionID)
	if err != nil {
		return p, err
	}
	p.Comment = comment.String
	p.CreatedAt = model.Date(created)
	p.OutOfBudget = outOfBudget != 0
	if mineID.Valid {
		p.MineID = &mineID.Int64
	}
	if sectionID.Valid {
		p.SectionID = &sectionID.Int64
	}
	return p, nil
}

// ListProjects returns all projects ordered by id.
func (s *Store) ListProjects() ([]model.Project, error) {
	rows, err := s.db.Query("SELECT " + projectCols + " FROM projects ORDER BY id ASC")
	if err != nil {
		return nil, storageErr("listing projects", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, storageErr("scanning project", err)
		}
		projects = append(projects, p)
	}
	return projects, storageErr("listing projects", rows.Err())
}

// GetProject returns the project or nil when absent.
func (s *Store) GetProject(id int64) (*model.Project, error) {
	row := s.db.QueryRow("SELECT "+projectCols+" FROM projects WHERE id=?", id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("reading project", err)
	}
	return &p, nil
}

// CreateProject inserts a new line item dated today and returns its id.
// The name must be non-empty; the budget may be zero.
func (s *Store) CreateProject(name string, budget float64, comment string, outOfBudget bool, mineID, sectionID *int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, validationf("project name must not be empty")
	}
	ob := 0
	if outOfBudget {
		ob = 1
	}
	res, err := s.db.Exec(
		`INSERT INTO projects (name, budget, comment, created_at, out_of_budget, mine_id, section_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, budget, comment, string(model.Today()), ob, nullableID(mineID), nullableID(sectionID),
	)
	if err != nil {
		return 0, storageErr("creating project", err)
	}
	id, err := res.LastInsertId()
	return id, storageErr("creating project", err)
}

// UpdateProjectName renames a project. Old timeline labels pick up the
// new name on their next recomputation.
func (s *Store) UpdateProjectName(id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationf("project name must not be empty")
	}
	_, err := s.db.Exec("UPDATE projects SET name=? WHERE id=?", name, id)
	return storageErr("renaming project", err)
}

// UpdateProjectMineSection repoints the reference-data links. Either may
// be nil.
func (s *Store) UpdateProjectMineSection(id int64, mineID, sectionID *int64) error {
	_, err := s.db.Exec("UPDATE projects SET mine_id=?, section_id=? WHERE id=?",
		nullableID(mineID), nullableID(sectionID), id)
	return storageErr("updating project references", err)
}

// UpdateProjectOutOfBudget flips the out-of-budget flag. The flag never
// affects status computation.
func (s *Store) UpdateProjectOutOfBudget(id int64, outOfBudget bool) error {
	ob := 0
	if outOfBudget {
		ob = 1
	}
	_, err := s.db.Exec("UPDATE projects SET out_of_budget=? WHERE id=?", ob, id)
	return storageErr("updating project flag", err)
}

// ActivityCounts reports how many events of each kind touch the
// project. Revisions count whether the project is source or target.
func (s *Store) ActivityCounts(id int64) (model.ActivityCounts, error) {
	var c model.ActivityCounts
	queries := []struct {
		dst  *int
		q    string
		args []any
	}{
		{&c.Corrections, "SELECT COUNT(*) FROM corrections WHERE project_id=?", []any{id}},
		{&c.Marketing, "SELECT COUNT(*) FROM marketing WHERE project_id=?", []any{id}},
		{&c.Contracts, "SELECT COUNT(*) FROM contracts WHERE project_id=?", []any{id}},
		{&c.Revisions, "SELECT COUNT(*) FROM revisions WHERE source_project_id=? OR target_project_id=?", []any{id, id}},
	}
	for _, q := range queries {
		if err := s.db.QueryRow(q.q, q.args...).Scan(q.dst); err != nil {
			return c, storageErr("counting project activity", err)
		}
	}
	return c, nil
}

// DeleteProject removes a project, but only if nothing was ever
// recorded against it. Otherwise it fails with HasHistoryError carrying
// the per-kind counts.
func (s *Store) DeleteProject(id int64) error {
	counts, err := s.ActivityCounts(id)
	if err != nil {
		return err
	}
	if counts.Total() > 0 {
		return &HasHistoryError{ProjectID: id, Counts: counts}
	}
	_, err = s.db.Exec("DELETE FROM projects WHERE id=?", id)
	return storageErr("deleting project", err)
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
