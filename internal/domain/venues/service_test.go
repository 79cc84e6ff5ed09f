package venues

import (
	"context"
	"errors"
	"testing"
	"time"

	"tour-planning-assistant/internal/domain/schedule"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]schedule.Venue
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]schedule.Venue{}}
}

func (r *testRepo) Create(ctx context.Context, v schedule.Venue) error {
	if _, ok := r.byID[v.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) Update(ctx context.Context, v schedule.Venue) error {
	if _, ok := r.byID[v.ID]; !ok {
		return ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (schedule.Venue, error) {
	v, ok := r.byID[id]
	if !ok {
		return schedule.Venue{}, ErrNotFound
	}
	return v, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]schedule.Venue, error) {
	out := make([]schedule.Venue, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}
	return out, nil
}

func (r *testRepo) Count(ctx context.Context) (int, error) {
	return len(r.byID), nil
}

// -------------------------
// Tests
// -------------------------

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, nil)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestService_Create(t *testing.T) {
	svc, repo := newTestService()

	v, err := svc.Create(context.Background(), CreateInput{Name: "  The Fillmore ", City: "San Francisco", Capacity: 1200})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.ID == "" || v.Name != "The Fillmore" {
		t.Fatalf("unexpected venue %+v", v)
	}
	if _, ok := repo.byID[v.ID]; !ok {
		t.Fatalf("expected venue persisted")
	}
}

func TestService_Create_Validates(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Create(context.Background(), CreateInput{Name: "", Capacity: 10}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Name: "Tiny", Capacity: 0}); !errors.Is(err, schedule.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Name: "Negative", Capacity: -5}); !errors.Is(err, schedule.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestService_Update_Patch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, CreateInput{Name: "The Troubadour", City: "West Hollywood", Capacity: 400})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	capacity := 500
	updated, err := svc.Update(ctx, v.ID, UpdateInput{Capacity: &capacity})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Capacity != 500 || updated.Name != "The Troubadour" {
		t.Fatalf("unexpected venue %+v", updated)
	}

	zero := 0
	if _, err := svc.Update(ctx, v.ID, UpdateInput{Capacity: &zero}); !errors.Is(err, schedule.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Lookup_SkipsUnknown(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, CreateInput{Name: "House of Blues", City: "Los Angeles", Capacity: 1000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Lookup(ctx, []string{v.ID, "ghost", v.ID})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(got) != 1 || got[v.ID].Name != "House of Blues" {
		t.Fatalf("unexpected lookup result %+v", got)
	}
}
