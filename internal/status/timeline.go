package status

import (
	"fmt"
	"sort"

	"github.com/dsakenov/minebudget/internal/model"
)

// Timeline merges every event touching the project into one chronology:
// corrections, marketing, contracts, incoming and outgoing revisions.
// Revision labels embed the counterparty's current name, resolved at
// merge time, so renaming a project relabels its old transfers on the
// next call. Entries sort by (date, label); dates are zero-padded ISO
// strings, so the lexical sort is chronological.
func (e *Engine) Timeline(projectID int64) ([]model.TimelineEntry, error) {
	var entries []model.TimelineEntry

	corrections, err := e.store.ListCorrections(projectID)
	if err != nil {
		return nil, err
	}
	for _, c := range corrections {
		entries = append(entries, model.TimelineEntry{
			ID:      c.ID,
			Kind:    model.KindCorrection,
			Date:    c.Date,
			Label:   "Correction",
			Amount:  c.NewBudget,
			Note:    c.Note,
			AddedBy: c.AddedBy,
		})
	}

	marketing, err := e.store.ListMarketing(projectID)
	if err != nil {
		return nil, err
	}
	for _, m := range marketing {
		entries = append(entries, model.TimelineEntry{
			ID:       m.ID,
			Kind:     model.KindMarketing,
			Date:     m.Date,
			Label:    "Marketing",
			Amount:   m.Amount,
			Note:     m.Note,
			FilePath: m.FilePath,
			AddedBy:  m.AddedBy,
		})
	}

	contracts, err := e.store.ListContracts(projectID)
	if err != nil {
		return nil, err
	}
	for _, c := range contracts {
		label := "Contract"
		if c.Contractor != "" {
			label = fmt.Sprintf("Contract (%s)", c.Contractor)
		}
		entries = append(entries, model.TimelineEntry{
			ID:       c.ID,
			Kind:     model.KindContract,
			Date:     c.Date,
			Label:    label,
			Amount:   c.Amount,
			Note:     c.Note,
			FilePath: c.FilePath,
			AddedBy:  c.AddedBy,
		})
	}

	in, err := e.store.ListRevisionsIn(projectID)
	if err != nil {
		return nil, err
	}
	for _, r := range in {
		entries = append(entries, model.TimelineEntry{
			ID:      r.ID,
			Kind:    model.KindRevisionIn,
			Date:    r.Date,
			Label:   fmt.Sprintf("Revision (+) from %q", e.projectName(r.SourceProjectID)),
			Amount:  r.Amount,
			Sign:    "+",
			Note:    r.Note,
			AddedBy: r.AddedBy,
		})
	}

	out, err := e.store.ListRevisionsOut(projectID)
	if err != nil {
		return nil, err
	}
	for _, r := range out {
		entries = append(entries, model.TimelineEntry{
			ID:      r.ID,
			Kind:    model.KindRevisionOut,
			Date:    r.Date,
			Label:   fmt.Sprintf("Revision (-) to %q", e.projectName(r.TargetProjectID)),
			Amount:  r.Amount,
			Sign:    "-",
			Note:    r.Note,
			AddedBy: r.AddedBy,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Label < entries[j].Label
	})
	return entries, nil
}

func (e *Engine) projectName(id int64) string {
	p, err := e.store.GetProject(id)
	if err != nil || p == nil {
		return fmt.Sprint(id)
	}
	return p.Name
}
