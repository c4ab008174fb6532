// Package status derives a project's live financial state from raw
// ledger rows. Nothing here writes or caches: every call re-reads, so
// corrections and deletions are reflected on the very next query.
package status

import (
	"github.com/dsakenov/minebudget/internal/ledger"
	"github.com/dsakenov/minebudget/internal/model"
)

// Engine computes derived values over one open ledger.
type Engine struct {
	store *ledger.Store
}

// New wraps a ledger store. The engine only ever reads from it.
func New(store *ledger.Store) *Engine {
	return &Engine{store: store}
}

// ProjectStatus computes have/need/diff and the financing stage.
//
//	have = base budget + incoming transfers - outgoing transfers
//	need = latest contract amount, else latest marketing amount, else base
//
// The stage priority (contract > marketing > none) is fixed: a signed
// contract always beats an estimate, no matter which was recorded last.
func (e *Engine) ProjectStatus(projectID int64) (model.Status, error) {
	var st model.Status

	var base float64
	if p, err := e.store.GetProject(projectID); err != nil {
		return st, err
	} else if p != nil {
		base = p.Budget
	}

	in, out, err := e.store.RevisionTotals(projectID)
	if err != nil {
		return st, err
	}
	st.Have = base + in - out

	contract, err := e.store.LastContract(projectID)
	if err != nil {
		return st, err
	}
	marketing, err := e.store.LastMarketing(projectID)
	if err != nil {
		return st, err
	}

	if contract != nil {
		amt := contract.Amount
		st.ContractAmount = &amt
	}
	if marketing != nil {
		amt := marketing.Amount
		st.MarketingAmount = &amt
	}

	switch {
	case contract != nil:
		st.Need = contract.Amount
		st.Stage = model.StageContract
	case marketing != nil:
		st.Need = marketing.Amount
		st.Stage = model.StageMarketing
	default:
		st.Need = base
		st.Stage = model.StageNone
	}

	st.Diff = st.Have - st.Need
	return st, nil
}
