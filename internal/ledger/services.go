package ledger

import (
	"database/sql"
	"strings"

	"github.com/dsakenov/minebudget/internal/model"
)

const serviceContractCols = "id, name, contractor, total_amount, start_date, end_date, mine_id, section_id, note, created_at"

// ListServiceContracts returns all service contracts ordered by id.
// Only meaningful on services-flavor files.
func (s *Store) ListServiceContracts() ([]model.ServiceContract, error) {
	rows, err := s.db.Query("SELECT " + serviceContractCols + " FROM service_contracts ORDER BY id ASC")
	if err != nil {
		return nil, storageErr("listing service contracts", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.ServiceContract
	for rows.Next() {
		c, err := scanServiceContract(rows)
		if err != nil {
			return nil, storageErr("scanning service contract", err)
		}
		out = append(out, c)
	}
	return out, storageErr("listing service contracts", rows.Err())
}

// GetServiceContract returns the contract or nil when absent.
func (s *Store) GetServiceContract(id int64) (*model.ServiceContract, error) {
	row := s.db.QueryRow("SELECT "+serviceContractCols+" FROM service_contracts WHERE id=?", id)
	c, err := scanServiceContract(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("reading service contract", err)
	}
	return &c, nil
}

// CreateServiceContract inserts a contract dated today and returns its id.
func (s *Store) CreateServiceContract(c model.ServiceContract) (int64, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return 0, validationf("service contract name must not be empty")
	}
	res, err := s.db.Exec(
		`INSERT INTO service_contracts (name, contractor, total_amount, start_date, end_date, mine_id, section_id, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name, c.Contractor, c.TotalAmount, string(c.StartDate), string(c.EndDate),
		nullableID(c.MineID), nullableID(c.SectionID), c.Note, string(model.Today()),
	)
	if err != nil {
		return 0, storageErr("creating service contract", err)
	}
	id, err := res.LastInsertId()
	return id, storageErr("creating service contract", err)
}

// UpdateServiceContract edits everything except created_at.
func (s *Store) UpdateServiceContract(c model.ServiceContract) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return validationf("service contract name must not be empty")
	}
	_, err := s.db.Exec(
		`UPDATE service_contracts
		 SET name=?, contractor=?, total_amount=?, start_date=?, end_date=?, mine_id=?, section_id=?, note=?
		 WHERE id=?`,
		name, c.Contractor, c.TotalAmount, string(c.StartDate), string(c.EndDate),
		nullableID(c.MineID), nullableID(c.SectionID), c.Note, c.ID,
	)
	return storageErr("updating service contract", err)
}

// DeleteServiceContract removes a contract and all of its acts.
func (s *Store) DeleteServiceContract(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("deleting service contract", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM service_acts WHERE contract_id=?", id); err != nil {
		return storageErr("deleting service acts", err)
	}
	if _, err := tx.Exec("DELETE FROM service_contracts WHERE id=?", id); err != nil {
		return storageErr("deleting service contract", err)
	}
	return storageErr("deleting service contract", tx.Commit())
}

// ServiceContractTotals reports the contract total, the sum drawn down
// by acts, and the remainder.
func (s *Store) ServiceContractTotals(id int64) (model.ServiceContractTotals, error) {
	var t model.ServiceContractTotals
	err := s.db.QueryRow("SELECT total_amount FROM service_contracts WHERE id=?", id).Scan(&t.Total)
	if err != nil && err != sql.ErrNoRows {
		return t, storageErr("reading service contract", err)
	}
	if err := s.db.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM service_acts WHERE contract_id=?", id,
	).Scan(&t.Spent); err != nil {
		return t, storageErr("summing service acts", err)
	}
	t.Remaining = t.Total - t.Spent
	return t, nil
}

// ListServiceActs returns a contract's acts ordered by act date.
func (s *Store) ListServiceActs(contractID int64) ([]model.ServiceAct, error) {
	rows, err := s.db.Query(
		`SELECT id, contract_id, period_start, period_end, act_date, amount, note
		 FROM service_acts WHERE contract_id=? ORDER BY act_date, id`, contractID)
	if err != nil {
		return nil, storageErr("listing service acts", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.ServiceAct
	for rows.Next() {
		a, err := scanServiceAct(rows)
		if err != nil {
			return nil, storageErr("scanning service act", err)
		}
		out = append(out, a)
	}
	return out, storageErr("listing service acts", rows.Err())
}

// GetServiceAct returns the act or nil when absent.
func (s *Store) GetServiceAct(id int64) (*model.ServiceAct, error) {
	row := s.db.QueryRow(
		`SELECT id, contract_id, period_start, period_end, act_date, amount, note
		 FROM service_acts WHERE id=?`, id)
	a, err := scanServiceAct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("reading service act", err)
	}
	return &a, nil
}

// AddServiceAct records a completed-work act against a contract.
func (s *Store) AddServiceAct(a model.ServiceAct) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO service_acts (contract_id, period_start, period_end, act_date, amount, note)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ContractID, string(a.PeriodStart), string(a.PeriodEnd), string(a.ActDate), a.Amount, a.Note,
	)
	if err != nil {
		return 0, storageErr("adding service act", err)
	}
	id, err := res.LastInsertId()
	return id, storageErr("adding service act", err)
}

// UpdateServiceAct edits an act in place.
func (s *Store) UpdateServiceAct(a model.ServiceAct) error {
	_, err := s.db.Exec(
		"UPDATE service_acts SET period_start=?, period_end=?, act_date=?, amount=?, note=? WHERE id=?",
		string(a.PeriodStart), string(a.PeriodEnd), string(a.ActDate), a.Amount, a.Note, a.ID,
	)
	return storageErr("updating service act", err)
}

// DeleteServiceAct removes an act.
func (s *Store) DeleteServiceAct(id int64) error {
	_, err := s.db.Exec("DELETE FROM service_acts WHERE id=?", id)
	return storageErr("deleting service act", err)
}

func scanServiceContract(row interface{ Scan(...any) error }) (model.ServiceContract, error) {
	var c model.ServiceContract
	var contractor, start, end, note sql.NullString
	var mineID, sectionID sql.NullInt64
	var created string
	err := row.Scan(&c.ID, &c.Name, &contractor, &c.TotalAmount, &start, &end, &mineID, &sectionID, &note, &created)
	if err != nil {
		return c, err
	}
	c.Contractor = contractor.String
	c.StartDate = model.Date(start.String)
	c.EndDate = model.Date(end.String)
	if mineID.Valid {
		c.MineID = &mineID.Int64
	}
	if sectionID.Valid {
		c.SectionID = &sectionID.Int64
	}
	c.Note = note.String
	c.CreatedAt = model.Date(created)
	return c, nil
}

func scanServiceAct(row interface{ Scan(...any) error }) (model.ServiceAct, error) {
	var a model.ServiceAct
	var periodEnd, note sql.NullString
	var periodStart, actDate string
	err := row.Scan(&a.ID, &a.ContractID, &periodStart, &periodEnd, &actDate, &a.Amount, &note)
	if err != nil {
		return a, err
	}
	a.PeriodStart = model.Date(periodStart)
	a.PeriodEnd = model.Date(periodEnd.String)
	a.ActDate = model.Date(actDate)
	a.Note = note.String
	return a, nil
}
