package ledger

import (
	"path/filepath"
	"testing"

	"github.com/dsakenov/minebudget/internal/model"
)

func newServicesStore(t *testing.T) *Store {
	t.Helper()
	s, err := Create(filepath.Join(t.TempDir(), "svc.db"), FlavorServices)
	if err != nil {
		t.Fatalf("Create services store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestServiceContractTotals(t *testing.T) {
	s := newServicesStore(t)

	id, err := s.CreateServiceContract(model.ServiceContract{
		Name:        "Road maintenance",
		Contractor:  "Acme Earthworks",
		TotalAmount: 100000,
	})
	if err != nil {
		t.Fatalf("CreateServiceContract: %v", err)
	}

	for _, amount := range []float64{25000, 15000} {
		if _, err := s.AddServiceAct(model.ServiceAct{
			ContractID: id,
			ActDate:    model.Date("2026-05-01"),
			Amount:     amount,
		}); err != nil {
			t.Fatalf("AddServiceAct: %v", err)
		}
	}

	totals, err := s.ServiceContractTotals(id)
	if err != nil {
		t.Fatalf("ServiceContractTotals: %v", err)
	}
	if totals.Total != 100000 || totals.Spent != 40000 || totals.Remaining != 60000 {
		t.Errorf("totals = %+v, want 100000/40000/60000", totals)
	}
}

func TestCreateServiceContract_RejectsEmptyName(t *testing.T) {
	s := newServicesStore(t)
	if _, err := s.CreateServiceContract(model.ServiceContract{Name: "  ", TotalAmount: 1}); err == nil {
		t.Error("CreateServiceContract accepted blank name")
	}
}

func TestDeleteServiceContract_RemovesActs(t *testing.T) {
	s := newServicesStore(t)
	id, _ := s.CreateServiceContract(model.ServiceContract{Name: "Hauling", TotalAmount: 5000})
	actID, err := s.AddServiceAct(model.ServiceAct{ContractID: id, ActDate: model.Date("2026-06-01"), Amount: 1000})
	if err != nil {
		t.Fatalf("AddServiceAct: %v", err)
	}

	if err := s.DeleteServiceContract(id); err != nil {
		t.Fatalf("DeleteServiceContract: %v", err)
	}

	c, err := s.GetServiceContract(id)
	if err != nil {
		t.Fatalf("GetServiceContract: %v", err)
	}
	if c != nil {
		t.Error("contract still present")
	}
	a, err := s.GetServiceAct(actID)
	if err != nil {
		t.Fatalf("GetServiceAct: %v", err)
	}
	if a != nil {
		t.Error("act orphaned after contract delete")
	}
}

func TestListServiceActs_OrderedByActDate(t *testing.T) {
	s := newServicesStore(t)
	id, _ := s.CreateServiceContract(model.ServiceContract{Name: "Drilling", TotalAmount: 9000})

	dates := []model.Date{"2026-03-01", "2026-01-01", "2026-02-01"}
	for _, d := range dates {
		if _, err := s.AddServiceAct(model.ServiceAct{ContractID: id, ActDate: d, PeriodStart: d, Amount: 100}); err != nil {
			t.Fatalf("AddServiceAct(%s): %v", d, err)
		}
	}

	acts, err := s.ListServiceActs(id)
	if err != nil {
		t.Fatalf("ListServiceActs: %v", err)
	}
	if len(acts) != 3 {
		t.Fatalf("len = %d, want 3", len(acts))
	}
	for i := 1; i < len(acts); i++ {
		if acts[i].ActDate < acts[i-1].ActDate {
			t.Errorf("acts out of order: %s after %s", acts[i].ActDate, acts[i-1].ActDate)
		}
	}
}

func TestDeleteMine_OnServicesFlavor(t *testing.T) {
	// No projects table here; DeleteMine must tolerate that.
	s := newServicesStore(t)
	mineID, err := s.CreateMine("South pit")
	if err != nil {
		t.Fatalf("CreateMine: %v", err)
	}
	cid, err := s.CreateServiceContract(model.ServiceContract{
		Name: "Blasting", TotalAmount: 1000, MineID: &mineID,
	})
	if err != nil {
		t.Fatalf("CreateServiceContract: %v", err)
	}

	if err := s.DeleteMine(mineID); err != nil {
		t.Fatalf("DeleteMine: %v", err)
	}
	c, _ := s.GetServiceContract(cid)
	if c == nil {
		t.Fatal("contract deleted along with mine")
	}
	if c.MineID != nil {
		t.Errorf("MineID = %v, want nil", c.MineID)
	}
}
