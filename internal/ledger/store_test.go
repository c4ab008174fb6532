package ledger

import (
	"path/filepath"
	"testing"
)

// newTestStore opens a fresh invest-flavor store in a temp dir.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_FreshFileIsInvest(t *testing.T) {
	s := newTestStore(t)

	flavor, err := s.DBType()
	if err != nil {
		t.Fatalf("DBType: %v", err)
	}
	if flavor != FlavorInvest {
		t.Errorf("DBType = %q, want %q", flavor, FlavorInvest)
	}

	// Fresh files start at the current schema version; reopening must
	// not attempt another migration or create a backup.
	v, err := s.schemaVersionMeta()
	if err != nil {
		t.Fatalf("schemaVersionMeta: %v", err)
	}
	if v != schemaVersion {
		t.Errorf("schema version = %d, want %d", v, schemaVersion)
	}
}

func TestCreate_ServicesFlavor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svc.db")
	s, err := Create(path, FlavorServices)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer s.Close()

	flavor, err := s.DBType()
	if err != nil {
		t.Fatalf("DBType: %v", err)
	}
	if flavor != FlavorServices {
		t.Errorf("DBType = %q, want %q", flavor, FlavorServices)
	}

	ok, err := s.tableExists("service_contracts")
	if err != nil {
		t.Fatalf("tableExists: %v", err)
	}
	if !ok {
		t.Error("service_contracts table missing after Create")
	}
}

func TestCreate_RejectsUnknownFlavor(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "x.db"), Flavor("other"))
	if err == nil {
		t.Fatal("Create accepted unknown flavor")
	}
}

func TestDBType_RepairsMistaggedServices(t *testing.T) {
	// A file tagged "services" that has no services tables is an old
	// invest file with a bad tag, and must read as invest.
	s := newTestStore(t)
	if err := s.setMeta("db_type", string(FlavorServices)); err != nil {
		t.Fatalf("setMeta: %v", err)
	}

	flavor, err := s.DBType()
	if err != nil {
		t.Fatalf("DBType: %v", err)
	}
	if flavor != FlavorInvest {
		t.Errorf("DBType = %q, want %q (repaired)", flavor, FlavorInvest)
	}
}

func TestRepairDBType(t *testing.T) {
	s := newTestStore(t)
	if err := s.RepairDBType(FlavorInvest); err != nil {
		t.Fatalf("RepairDBType: %v", err)
	}
	v, err := s.getMeta("db_type")
	if err != nil {
		t.Fatalf("getMeta: %v", err)
	}
	if v != string(FlavorInvest) {
		t.Errorf("db_type = %q, want %q", v, FlavorInvest)
	}

	if err := s.RepairDBType(Flavor("bogus")); err == nil {
		t.Error("RepairDBType accepted unknown flavor")
	}
}

func TestSaveAs_CopiesData(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "a.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	id, err := s.CreateProject("Shaft pump", 100000, "", false, nil, nil)
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	next, err := s.SaveAs(filepath.Join(dir, "b.db"))
	if err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	defer next.Close()

	p, err := next.GetProject(id)
	if err != nil {
		t.Fatalf("GetProject on copy: %v", err)
	}
	if p == nil || p.Name != "Shaft pump" {
		t.Errorf("copy missing project, got %+v", p)
	}
}

func TestOpen_ReopenSeesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id, err := s.CreateProject("Conveyor", 5000, "spare belts", true, nil, nil)
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	p, err := s2.GetProject(id)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if p == nil {
		t.Fatal("project lost on reopen")
	}
	if p.Comment != "spare belts" || !p.OutOfBudget {
		t.Errorf("project = %+v, want comment and flag preserved", p)
	}
}
