package bands

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Band
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Band{}}
}

func (r *testRepo) Create(ctx context.Context, b Band) error {
	if _, ok := r.byID[b.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Band, error) {
	b, ok := r.byID[id]
	if !ok {
		return Band{}, ErrNotFound
	}
	return b, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Band, error) {
	out := make([]Band, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
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

	b, err := svc.Create(context.Background(), CreateInput{Name: "  Los Prisioneros ", Genre: " rock "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID == "" || b.Name != "Los Prisioneros" || b.Genre != "rock" {
		t.Fatalf("unexpected band %+v", b)
	}
	if !b.CreatedAt.Equal(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected created_at from clock, got %v", b.CreatedAt)
	}
	if _, ok := repo.byID[b.ID]; !ok {
		t.Fatalf("expected band persisted")
	}
}

func TestService_Create_RequiresName(t *testing.T) {
	svc, repo := newTestService()

	if _, err := svc.Create(context.Background(), CreateInput{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestService_GetByID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateInput{Name: "Soda Stereo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(ctx, " "+b.ID+" ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Soda Stereo" {
		t.Fatalf("unexpected band %+v", got)
	}

	if _, err := svc.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetByID(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty id, got %v", err)
	}
}

func TestService_ListAndCount(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, name := range []string{"Aterciopelados", "Café Tacvba", "Babasónicos"} {
		if _, err := svc.Create(ctx, CreateInput{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	items, err := svc.List(ctx, ListFilter{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 bands, got %d", len(items))
	}

	n, err := svc.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 bands, got %d", n)
	}
}
