package status

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/dsakenov/minebudget/internal/model"

	_ "modernc.org/sqlite"
)

func TestTimeline_MergedAndOrdered(t *testing.T) {
	store, engine := newTestEngine(t)
	p, _ := store.CreateProject("Main shaft", 1000000, "", false, nil, nil)
	q, _ := store.CreateProject("Reserve", 500000, "", false, nil, nil)

	if _, err := store.RecordMarketing(p, 1200000, model.Date("2026-01-05"), "", "estimate", "ann"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordContract(p, 1100000, model.Date("2026-01-20"), "Acme", "", "", "ben"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordCorrection(p, 1050000, model.Date("2026-01-10"), "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordRevision(p, q, 100000, model.Date("2026-02-01"), "", ""); err != nil {
		t.Fatal(err)
	}

	entries, err := engine.Timeline(p)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("len = %d, want 4", len(entries))
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Date < entries[i-1].Date {
			t.Errorf("out of order: %s after %s", entries[i].Date, entries[i-1].Date)
		}
	}

	wantKinds := []model.EntryKind{
		model.KindMarketing,
		model.KindCorrection,
		model.KindContract,
		model.KindRevisionOut,
	}
	for i, want := range wantKinds {
		if entries[i].Kind != want {
			t.Errorf("entries[%d].Kind = %q, want %q", i, entries[i].Kind, want)
		}
	}

	if entries[2].Label != "Contract (Acme)" {
		t.Errorf("contract label = %q", entries[2].Label)
	}
	if entries[3].Sign != "-" {
		t.Errorf("outgoing revision sign = %q, want -", entries[3].Sign)
	}
	if entries[0].AddedBy != "ann" {
		t.Errorf("AddedBy = %q, want ann", entries[0].AddedBy)
	}
}

func TestTimeline_RevisionSeenFromBothSides(t *testing.T) {
	store, engine := newTestEngine(t)
	p, _ := store.CreateProject("Giver", 1000, "", false, nil, nil)
	q, _ := store.CreateProject("Taker", 0, "", false, nil, nil)

	if _, err := store.RecordRevision(p, q, 400, model.Date("2026-03-01"), "", ""); err != nil {
		t.Fatal(err)
	}

	out, err := engine.Timeline(p)
	if err != nil {
		t.Fatalf("Timeline(p): %v", err)
	}
	if len(out) != 1 || out[0].Kind != model.KindRevisionOut {
		t.Fatalf("giver timeline = %+v", out)
	}
	if out[0].Label != `Revision (-) to "Taker"` {
		t.Errorf("giver label = %q", out[0].Label)
	}

	in, err := engine.Timeline(q)
	if err != nil {
		t.Fatalf("Timeline(q): %v", err)
	}
	if len(in) != 1 || in[0].Kind != model.KindRevisionIn {
		t.Fatalf("taker timeline = %+v", in)
	}
	if in[0].Label != `Revision (+) from "Giver"` || in[0].Sign != "+" {
		t.Errorf("taker entry = %+v", in[0])
	}
}

func TestTimeline_RenameRelabelsOldTransfers(t *testing.T) {
	store, engine := newTestEngine(t)
	p, _ := store.CreateProject("Old name", 1000, "", false, nil, nil)
	q, _ := store.CreateProject("Other", 0, "", false, nil, nil)
	if _, err := store.RecordRevision(p, q, 100, model.Date("2026-01-01"), "", ""); err != nil {
		t.Fatal(err)
	}

	if err := store.UpdateProjectName(p, "New name"); err != nil {
		t.Fatalf("UpdateProjectName: %v", err)
	}

	entries, err := engine.Timeline(q)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if entries[0].Label != `Revision (+) from "New name"` {
		t.Errorf("label = %q, want the current name", entries[0].Label)
	}
}

func TestTimeline_UnknownCounterpartyFallsBackToID(t *testing.T) {
	store, engine := newTestEngine(t)
	p, _ := store.CreateProject("Scratch", 1000, "", false, nil, nil)

	// The store enforces foreign keys, so a dangling counterparty can
	// only come from an externally edited file. Plant one through a raw
	// connection, which leaves enforcement at sqlite's default (off).
	const ghost = int64(99)
	raw, err := sql.Open("sqlite", store.Path())
	if err != nil {
		t.Fatalf("raw open: %v", err)
	}
	defer raw.Close()
	if _, err := raw.Exec(
		"INSERT INTO revisions (source_project_id, target_project_id, amount, date, note, added_by) VALUES (?, ?, 50, '2026-01-02', '', '')",
		p, ghost,
	); err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	entries, err := engine.Timeline(p)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %+v, want one", entries)
	}
	want := fmt.Sprintf(`Revision (-) to %q`, fmt.Sprint(ghost))
	if entries[0].Label != want {
		t.Errorf("label = %q, want %q", entries[0].Label, want)
	}
}

func TestTimeline_EmptyProject(t *testing.T) {
	store, engine := newTestEngine(t)
	id, _ := store.CreateProject("Quiet", 0, "", false, nil, nil)

	entries, err := engine.Timeline(id)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want none", entries)
	}
}
