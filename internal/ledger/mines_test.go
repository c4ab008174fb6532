package ledger

import (
	"testing"
)

func TestDeleteMine_UnlinksProjectsAndSections(t *testing.T) {
	s := newTestStore(t)

	mineID, err := s.CreateMine("East pit")
	if err != nil {
		t.Fatalf("CreateMine: %v", err)
	}
	secID, err := s.CreateSection(mineID, "Bench 1")
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	pid, err := s.CreateProject("Dewatering", 1000, "", false, &mineID, &secID)
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if err := s.DeleteMine(mineID); err != nil {
		t.Fatalf("DeleteMine: %v", err)
	}

	p, err := s.GetProject(pid)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if p.MineID != nil || p.SectionID != nil {
		t.Errorf("project still references deleted mine: %+v", p)
	}

	sections, err := s.ListSections(nil)
	if err != nil {
		t.Fatalf("ListSections: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("sections = %+v, want none after mine delete", sections)
	}
	mines, err := s.ListMines()
	if err != nil {
		t.Fatalf("ListMines: %v", err)
	}
	if len(mines) != 0 {
		t.Errorf("mines = %+v, want none", mines)
	}
}

func TestDeleteSection_KeepsMine(t *testing.T) {
	s := newTestStore(t)
	mineID, _ := s.CreateMine("West pit")
	secID, _ := s.CreateSection(mineID, "Bench 3")
	pid, _ := s.CreateProject("Haul road", 500, "", false, &mineID, &secID)

	if err := s.DeleteSection(secID); err != nil {
		t.Fatalf("DeleteSection: %v", err)
	}

	p, _ := s.GetProject(pid)
	if p.SectionID != nil {
		t.Errorf("SectionID = %v, want nil", p.SectionID)
	}
	if p.MineID == nil || *p.MineID != mineID {
		t.Errorf("MineID = %v, want %d (mine link survives)", p.MineID, mineID)
	}

	name, err := s.MineName(&mineID)
	if err != nil || name != "West pit" {
		t.Errorf("MineName = %q, %v", name, err)
	}
}

func TestMineName_NilAndUnknown(t *testing.T) {
	s := newTestStore(t)
	if name, err := s.MineName(nil); err != nil || name != "" {
		t.Errorf("MineName(nil) = %q, %v", name, err)
	}
	unknown := int64(77)
	if name, err := s.MineName(&unknown); err != nil || name != "" {
		t.Errorf("MineName(unknown) = %q, %v", name, err)
	}
}

func TestListSections_FilterByMine(t *testing.T) {
	s := newTestStore(t)
	m1, _ := s.CreateMine("A")
	m2, _ := s.CreateMine("B")
	if _, err := s.CreateSection(m1, "S1"); err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	if _, err := s.CreateSection(m2, "S2"); err != nil {
		t.Fatalf("CreateSection: %v", err)
	}

	all, err := s.ListSections(nil)
	if err != nil {
		t.Fatalf("ListSections(nil): %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all sections = %d, want 2", len(all))
	}

	only, err := s.ListSections(&m1)
	if err != nil {
		t.Fatalf("ListSections(m1): %v", err)
	}
	if len(only) != 1 || only[0].Name != "S1" {
		t.Errorf("filtered sections = %+v", only)
	}
}
