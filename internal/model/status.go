package model

// Stage identifies which source currently determines a project's
// required funds. The priority is fixed: contract > marketing > none.
type Stage string

const (
	StageNone      Stage = "none"
	StageMarketing Stage = "marketing"
	StageContract  Stage = "contract"
)

// Status is the derived financial state of a project. Nothing here is
// stored; every value is recomputed from raw rows on each query.
type Status struct {
	Have  float64
	Need  float64
	Diff  float64
	Stage Stage

	// Latest amounts of each kind, populated when present regardless
	// of which one determined Need.
	MarketingAmount *float64
	ContractAmount  *float64
}

// ActivityCounts holds per-kind event counts for a project. A project
// is deletable only when all four are zero.
type ActivityCounts struct {
	Corrections int
	Marketing   int
	Contracts   int
	Revisions   int
}

// Total returns the sum across all event kinds.
func (c ActivityCounts) Total() int {
	return c.Corrections + c.Marketing + c.Contracts + c.Revisions
}

// EntryKind discriminates merged timeline entries.
type EntryKind string

const (
	KindCorrection  EntryKind = "correction"
	KindMarketing   EntryKind = "marketing"
	KindContract    EntryKind = "contract"
	KindRevisionIn  EntryKind = "revision_in"
	KindRevisionOut EntryKind = "revision_out"
)

// TimelineEntry is one event in a project's merged chronology. Label is
// a human-readable type string; for revisions it embeds the counterparty
// project's current name, resolved at merge time.
type TimelineEntry struct {
	ID       int64
	Kind     EntryKind
	Date     Date
	Label    string
	Amount   float64
	Sign     string // "+" or "-" for revisions, empty otherwise
	Note     string
	FilePath string
	AddedBy  string
}
