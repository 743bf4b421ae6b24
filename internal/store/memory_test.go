package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avforge/configurator/internal/store"
	"github.com/avforge/configurator/pkg/models"
)

// newTestStore creates a fresh in-memory store backed by a temp dir.
func newTestStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore(t.TempDir())
	t.Cleanup(func() { s.Close() })
	return s
}

func seedProject(t *testing.T, s store.Store, id string) *models.Project {
	t.Helper()
	p := &models.Project{ID: id, Name: "Project " + id, Tier: models.TierSilver}
	if err := s.CreateProject(context.Background(), p); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	return p
}

// ─── Project CRUD ────────────────────────────────────────────

func TestCreateAndGetProject(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProject(t, s, "p1")
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Fatal("CreateProject() should stamp timestamps")
	}

	got, err := s.GetProject(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if got.Name != "Project p1" {
		t.Errorf("GetProject().Name = %q, want %q", got.Name, "Project p1")
	}
	if got.Tier != models.TierSilver {
		t.Errorf("GetProject().Tier = %q, want %q", got.Tier, models.TierSilver)
	}
}

func TestGetProject_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetProject(context.Background(), "missing")
	var nf *store.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("GetProject() error = %v, want *ErrNotFound", err)
	}
	if nf.Entity != "project" || nf.Key != "missing" {
		t.Errorf("ErrNotFound = %+v", nf)
	}
}

func TestUpdateProject_KeepsCreatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProject(t, s, "p1")
	created := p.CreatedAt

	update := &models.Project{ID: "p1", Name: "Renamed", Ancillary: models.Ancillary{Cabling: 200}}
	if err := s.UpdateProject(ctx, update); err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	got, _ := s.GetProject(ctx, "p1")
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed from %v to %v", created, got.CreatedAt)
	}
	if got.Ancillary.Cabling != 200 {
		t.Errorf("Ancillary.Cabling = %v, want 200", got.Ancillary.Cabling)
	}

	if err := s.UpdateProject(ctx, &models.Project{ID: "ghost"}); err == nil {
		t.Error("UpdateProject() on missing project should fail")
	}
}

func TestListProjects_Ordered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"c", "a", "b"} {
		p := &models.Project{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		s.CreateProject(ctx, p)
	}

	list, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(list) != 3 || list[0].ID != "c" || list[2].ID != "b" {
		t.Errorf("ListProjects() order = %v", list)
	}
}

func TestDeleteProject_CascadesRooms(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedProject(t, s, "p1")
	seedProject(t, s, "p2")
	s.CreateRoom(ctx, &models.Room{ID: "r1", ProjectID: "p1"})
	s.CreateRoom(ctx, &models.Room{ID: "r2", ProjectID: "p2"})

	if err := s.DeleteProject(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if _, err := s.GetRoom(ctx, "p1", "r1"); err == nil {
		t.Error("room of deleted project should be gone")
	}
	if _, err := s.GetRoom(ctx, "p2", "r2"); err != nil {
		t.Errorf("room of other project should remain, got %v", err)
	}
	if err := s.DeleteProject(ctx, "p1"); err == nil {
		t.Error("second DeleteProject() should fail")
	}
}

// ─── Room CRUD ───────────────────────────────────────────────

func TestCreateRoom_RequiresProject(t *testing.T) {
	s := newTestStore(t)

	err := s.CreateRoom(context.Background(), &models.Room{ID: "r1", ProjectID: "nope"})
	var nf *store.ErrNotFound
	if !errors.As(err, &nf) || nf.Entity != "project" {
		t.Fatalf("CreateRoom() error = %v, want project not found", err)
	}
}

func TestRoom_NoAliasing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedProject(t, s, "p1")

	budget := 5000.0
	room := &models.Room{
		ID:        "r1",
		ProjectID: "p1",
		Requirement: models.RoomRequirement{
			Name:          "Huddle",
			Features:      []models.Feature{{Name: "Wireless Presentation", Priority: models.PriorityMustHave}},
			BudgetCeiling: &budget,
		},
		Selection: models.Selection{Lines: []models.Line{{SKU: "WP-CAST-PRO", Quantity: 1}}},
	}
	if err := s.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}

	room.Selection.Lines[0].Quantity = 9
	room.Requirement.Features[0].Name = "changed"
	budget = 1

	got, err := s.GetRoom(ctx, "p1", "r1")
	if err != nil {
		t.Fatalf("GetRoom() error = %v", err)
	}
	if got.Selection.Lines[0].Quantity != 1 {
		t.Errorf("stored quantity = %d, want 1", got.Selection.Lines[0].Quantity)
	}
	if got.Requirement.Features[0].Name != "Wireless Presentation" {
		t.Errorf("stored feature = %q", got.Requirement.Features[0].Name)
	}
	if *got.Requirement.BudgetCeiling != 5000 {
		t.Errorf("stored budget = %v, want 5000", *got.Requirement.BudgetCeiling)
	}

	got.Selection.Lines[0].SKU = "mutated"
	again, _ := s.GetRoom(ctx, "p1", "r1")
	if again.Selection.Lines[0].SKU != "WP-CAST-PRO" {
		t.Error("GetRoom() result aliases stored data")
	}
}

func TestUpdateAndDeleteRoom(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedProject(t, s, "p1")
	s.CreateRoom(ctx, &models.Room{ID: "r1", ProjectID: "p1"})

	update := &models.Room{ID: "r1", ProjectID: "p1", Selection: models.Selection{Lines: []models.Line{{SKU: "DSP-65-4K", Quantity: 2}}}}
	if err := s.UpdateRoom(ctx, update); err != nil {
		t.Fatalf("UpdateRoom() error = %v", err)
	}
	rooms, err := s.ListRooms(ctx, "p1")
	if err != nil {
		t.Fatalf("ListRooms() error = %v", err)
	}
	if len(rooms) != 1 || rooms[0].Selection.Quantity("DSP-65-4K") != 2 {
		t.Errorf("ListRooms() = %+v", rooms)
	}

	if err := s.DeleteRoom(ctx, "p1", "r1"); err != nil {
		t.Fatalf("DeleteRoom() error = %v", err)
	}
	if err := s.DeleteRoom(ctx, "p1", "r1"); err == nil {
		t.Error("second DeleteRoom() should fail")
	}
	if _, err := s.ListRooms(ctx, "ghost"); err == nil {
		t.Error("ListRooms() on missing project should fail")
	}
}

// ─── Persistence ─────────────────────────────────────────────

func TestSnapshot_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1 := store.NewMemoryStore(dir)
	s1.CreateProject(ctx, &models.Project{ID: "p1", Name: "Campus refresh"})
	s1.CreateRoom(ctx, &models.Room{ID: "r1", ProjectID: "p1",
		Selection: models.Selection{Lines: []models.Line{{SKU: "CTL-PROC-3", Quantity: 1}}}})
	if err := s1.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s2 := store.NewMemoryStore(dir)
	t.Cleanup(func() { s2.Close() })

	p, err := s2.GetProject(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProject() after restart error = %v", err)
	}
	if p.Name != "Campus refresh" {
		t.Errorf("Name = %q after restart", p.Name)
	}
	r, err := s2.GetRoom(ctx, "p1", "r1")
	if err != nil {
		t.Fatalf("GetRoom() after restart error = %v", err)
	}
	if !r.Selection.Has("CTL-PROC-3") {
		t.Error("selection lost across restart")
	}
}

func TestClose_Idempotent(t *testing.T) {
	s := store.NewMemoryStore("")
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
