package profile

import (
	"context"
	"testing"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/store"
)

func TestBuilder_Build(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	mem.AddUser(&core.User{ID: "u1", Name: "u1"})
	mem.AddUser(&core.User{ID: "u2", Name: "u2"})
	mem.AddUser(&core.User{ID: "u3", Name: "u3"})
	if err := mem.AddRating(core.Rating{UserID: "u1", BookID: "b1", Score: 5}); err != nil {
		t.Fatal(err)
	}
	if err := mem.AddRating(core.Rating{UserID: "u1", BookID: "b2", Score: 2}); err != nil {
		t.Fatal(err)
	}

	b := &Builder{Users: mem, Ratings: mem}
	profiles, err := b.Build(ctx)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	// 所有已知用户都必须出现，未打分用户得到空画像
	if len(profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(profiles))
	}
	for _, id := range []string{"u1", "u2", "u3"} {
		if _, ok := profiles[id]; !ok {
			t.Errorf("profile for %s missing", id)
		}
	}
	if len(profiles["u2"]) != 0 || len(profiles["u3"]) != 0 {
		t.Errorf("expected empty profiles for raters without ratings")
	}
	if profiles["u1"]["b1"] != 5 || profiles["u1"]["b2"] != 2 {
		t.Errorf("unexpected u1 profile: %v", profiles["u1"])
	}
}

func TestBuilder_EmptyStores(t *testing.T) {
	mem := store.NewMemory()
	b := &Builder{Users: mem, Ratings: mem}
	profiles, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected no profiles, got %d", len(profiles))
	}
}

// 恶意/损坏数据：存储里出现越界分数，画像构建边界必须报 INVALID_INPUT
func TestBuilder_InvalidScore(t *testing.T) {
	users := &stubUserStore{users: []*core.User{{ID: "u1"}}}
	ratings := &stubRatingStore{grouped: map[string][]core.Rating{
		"u1": {{UserID: "u1", BookID: "b1", Score: 9}},
	}}

	b := &Builder{Users: users, Ratings: ratings}
	_, err := b.Build(context.Background())
	if err == nil {
		t.Fatal("expected error for out-of-range score")
	}
	if !core.IsInvalidInput(err) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

type stubUserStore struct {
	users []*core.User
}

func (s *stubUserStore) GetUser(_ context.Context, userID string) (*core.User, error) {
	for _, u := range s.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound, "user not found")
}

func (s *stubUserStore) ListUsers(_ context.Context) ([]*core.User, error) {
	return s.users, nil
}

type stubRatingStore struct {
	grouped map[string][]core.Rating
}

func (s *stubRatingStore) AllRatingsByUser(_ context.Context) (map[string][]core.Rating, error) {
	return s.grouped, nil
}

func (s *stubRatingStore) GetRating(_ context.Context, userID, bookID string) (*core.Rating, error) {
	for _, r := range s.grouped[userID] {
		if r.BookID == bookID {
			return &r, nil
		}
	}
	return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound, "rating not found")
}
