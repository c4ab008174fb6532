package ledger

import (
	"errors"
	"testing"

	"github.com/dsakenov/minebudget/internal/model"
)

func TestCreateProject_RejectsEmptyName(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"", "   ", "\t"} {
		_, err := s.CreateProject(name, 1000, "", false, nil, nil)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("CreateProject(%q) err = %v, want ValidationError", name, err)
		}
	}
}

func TestCreateProject_TrimsName(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateProject("  Ventilation  ", 0, "", false, nil, nil)
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	p, err := s.GetProject(id)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if p.Name != "Ventilation" {
		t.Errorf("Name = %q, want trimmed", p.Name)
	}
	if p.CreatedAt == "" {
		t.Error("CreatedAt not stamped")
	}
}

func TestGetProject_AbsentIsNil(t *testing.T) {
	s := newTestStore(t)
	p, err := s.GetProject(999)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if p != nil {
		t.Errorf("GetProject(999) = %+v, want nil", p)
	}
}

func TestListProjects_OrderedByID(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"A", "B", "C"} {
		if _, err := s.CreateProject(name, 100, "", false, nil, nil); err != nil {
			t.Fatalf("CreateProject(%s): %v", name, err)
		}
	}
	list, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].ID <= list[i-1].ID {
			t.Errorf("not ordered by id: %d after %d", list[i].ID, list[i-1].ID)
		}
	}
}

func TestDeleteProject_CleanProject(t *testing.T) {
	s := newTestStore(t)
	id, err := s.CreateProject("Scratch", 0, "", false, nil, nil)
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := s.DeleteProject(id); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	p, err := s.GetProject(id)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if p != nil {
		t.Error("project still present after delete")
	}
}

func TestDeleteProject_BlockedByHistory(t *testing.T) {
	s := newTestStore(t)
	id, err := s.CreateProject("Crusher", 1000, "", false, nil, nil)
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := s.RecordMarketing(id, 1500, model.Date("2026-01-10"), "", "", ""); err != nil {
		t.Fatalf("RecordMarketing: %v", err)
	}
	if _, err := s.RecordCorrection(id, 2000, model.Date("2026-01-11"), "", ""); err != nil {
		t.Fatalf("RecordCorrection: %v", err)
	}

	err = s.DeleteProject(id)
	var hist *HasHistoryError
	if !errors.As(err, &hist) {
		t.Fatalf("DeleteProject err = %v, want HasHistoryError", err)
	}
	if hist.Counts.Marketing != 1 || hist.Counts.Corrections != 1 {
		t.Errorf("Counts = %+v, want 1 marketing and 1 correction", hist.Counts)
	}

	// Project must survive the refused delete.
	p, err := s.GetProject(id)
	if err != nil || p == nil {
		t.Fatalf("project gone after refused delete: %v", err)
	}
}

func TestActivityCounts_RevisionsCountBothEnds(t *testing.T) {
	s := newTestStore(t)
	src, _ := s.CreateProject("Source", 10000, "", false, nil, nil)
	dst, _ := s.CreateProject("Target", 0, "", false, nil, nil)

	if _, err := s.RecordRevision(src, dst, 500, model.Date("2026-02-01"), "", ""); err != nil {
		t.Fatalf("RecordRevision: %v", err)
	}

	for _, id := range []int64{src, dst} {
		counts, err := s.ActivityCounts(id)
		if err != nil {
			t.Fatalf("ActivityCounts(%d): %v", id, err)
		}
		if counts.Revisions != 1 {
			t.Errorf("Revisions for %d = %d, want 1", id, counts.Revisions)
		}
	}
}

func TestUpdateProjectMineSection(t *testing.T) {
	s := newTestStore(t)
	mineID, err := s.CreateMine("North pit")
	if err != nil {
		t.Fatalf("CreateMine: %v", err)
	}
	secID, err := s.CreateSection(mineID, "Level 2")
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	id, _ := s.CreateProject("Hoist", 100, "", false, nil, nil)

	if err := s.UpdateProjectMineSection(id, &mineID, &secID); err != nil {
		t.Fatalf("UpdateProjectMineSection: %v", err)
	}
	p, _ := s.GetProject(id)
	if p.MineID == nil || *p.MineID != mineID {
		t.Errorf("MineID = %v, want %d", p.MineID, mineID)
	}
	if p.SectionID == nil || *p.SectionID != secID {
		t.Errorf("SectionID = %v, want %d", p.SectionID, secID)
	}

	// Clearing both.
	if err := s.UpdateProjectMineSection(id, nil, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	p, _ = s.GetProject(id)
	if p.MineID != nil || p.SectionID != nil {
		t.Errorf("references not cleared: %+v", p)
	}
}
