// Package model defines the entities persisted by the ledger and the
// derived status/timeline types computed from them.
package model

// Project is a budget line item. Budget is the current base allocation;
// corrections overwrite it in place rather than appending to it.
type Project struct {
	ID          int64
	Name        string
	Budget      float64
	Comment     string
	CreatedAt   Date
	OutOfBudget bool
	MineID      *int64
	SectionID   *int64
}

// Correction is an authoritative overwrite of a project's base budget.
type Correction struct {
	ID        int64
	ProjectID int64
	NewBudget float64
	Date      Date
	Note      string
	AddedBy   string
}

// Marketing is an estimated cost milestone. It contributes to "need"
// only; it never changes available funds.
type Marketing struct {
	ID        int64
	ProjectID int64
	Amount    float64
	Date      Date
	FilePath  string
	Note      string
	AddedBy   string
}

// Contract is a committed cost. It outranks marketing estimates when
// deriving a project's required funds.
type Contract struct {
	ID         int64
	ProjectID  int64
	Amount     float64
	Date       Date
	Contractor string
	FilePath   string
	Note       string
	AddedBy    string
}

// Revision transfers available funds from one project to another.
type Revision struct {
	ID              int64
	SourceProjectID int64
	TargetProjectID int64
	Amount          float64
	Date            Date
	Note            string
	AddedBy         string
}

// Mine is a reference entity; sections belong to exactly one mine.
type Mine struct {
	ID   int64
	Name string
}

// Section is a subdivision of a mine.
type Section struct {
	ID     int64
	MineID int64
	Name   string
}

// ServiceContract is the top-level entity of the "services" flavor:
// a services/labor contract drawn down by acts.
type ServiceContract struct {
	ID          int64
	Name        string
	Contractor  string
	TotalAmount float64
	StartDate   Date
	EndDate     Date
	MineID      *int64
	SectionID   *int64
	Note        string
	CreatedAt   Date
}

// ServiceAct is a completed-work act charged against a service contract.
type ServiceAct struct {
	ID          int64
	ContractID  int64
	PeriodStart Date
	PeriodEnd   Date
	ActDate     Date
	Amount      float64
	Note        string
}

// ServiceContractTotals summarizes a contract's draw-down.
type ServiceContractTotals struct {
	Total     float64
	Spent     float64
	Remaining float64
}
