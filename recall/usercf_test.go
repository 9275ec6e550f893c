package recall

import (
	"context"
	"testing"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/store"
)

func seedWorkedExample(t *testing.T) *store.Memory {
	t.Helper()
	mem := store.NewMemory()
	for _, id := range []string{"a", "b", "c"} {
		mem.AddUser(&core.User{ID: id, Name: id})
	}
	ratings := []core.Rating{
		{UserID: "a", BookID: "X", Score: 5},
		{UserID: "a", BookID: "Y", Score: 4},
		{UserID: "a", BookID: "Z", Score: 1},
		{UserID: "a", BookID: "R", Score: 5},
		{UserID: "b", BookID: "X", Score: 4},
		{UserID: "b", BookID: "Y", Score: 3},
		{UserID: "b", BookID: "Z", Score: 1},
		{UserID: "c", BookID: "X", Score: 2},
		{UserID: "c", BookID: "Y", Score: 2},
		{UserID: "c", BookID: "Z", Score: 5},
	}
	for _, r := range ratings {
		if err := mem.AddRating(r); err != nil {
			t.Fatal(err)
		}
	}
	return mem
}

// 经典示例：b 的最近邻是 a，a 给 R 打了 5 分而 b 没读过，R 必须进候选
func TestUserCF_WorkedExample(t *testing.T) {
	mem := seedWorkedExample(t)
	cf := &UserCF{Users: mem, Ratings: mem, TopK: 1}

	items, err := cf.Recall(context.Background(), &core.RecommendContext{UserID: "b"})
	if err != nil {
		t.Fatalf("Recall() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly 1 candidate, got %d", len(items))
	}
	if items[0].ID != "R" {
		t.Errorf("expected candidate R, got %s", items[0].ID)
	}
	if items[0].Score != 5 {
		t.Errorf("expected candidate score 5 (neighbor's rating), got %v", items[0].Score)
	}
	if lbl, ok := items[0].Labels["neighbor"]; !ok || lbl.Value != "a" {
		t.Errorf("expected contributing neighbor a, got %+v", items[0].Labels)
	}
}

// 目标用户已读的书绝不会再被推荐
func TestUserCF_NoSelfRecommendation(t *testing.T) {
	mem := seedWorkedExample(t)
	cf := &UserCF{Users: mem, Ratings: mem, TopK: 2}

	items, err := cf.Recall(context.Background(), &core.RecommendContext{UserID: "b"})
	if err != nil {
		t.Fatalf("Recall() error: %v", err)
	}
	rated := map[string]bool{"X": true, "Y": true, "Z": true}
	for _, it := range items {
		if rated[it.ID] {
			t.Errorf("candidate %s already rated by target user", it.ID)
		}
	}
}

// 低分过滤：近邻打分低于阈值的书不扩散，即便近邻与目标高度相似
func TestUserCF_LikeThreshold(t *testing.T) {
	mem := seedWorkedExample(t)
	// a 给 L 打了 2 分：a 自己不喜欢，不应推荐给 b
	if err := mem.AddRating(core.Rating{UserID: "a", BookID: "L", Score: 2}); err != nil {
		t.Fatal(err)
	}

	cf := &UserCF{Users: mem, Ratings: mem, TopK: 1}
	items, err := cf.Recall(context.Background(), &core.RecommendContext{UserID: "b"})
	if err != nil {
		t.Fatalf("Recall() error: %v", err)
	}
	for _, it := range items {
		if it.ID == "L" {
			t.Fatal("low-rated book propagated to candidates")
		}
	}
}

// 重复候选：首个（更相似的）近邻胜出，后续贡献直接丢弃
func TestUserCF_FirstNeighborWins(t *testing.T) {
	mem := store.NewMemory()
	for _, id := range []string{"t", "n1", "n2"} {
		mem.AddUser(&core.User{ID: id, Name: id})
	}
	ratings := []core.Rating{
		{UserID: "t", BookID: "X", Score: 5},
		{UserID: "t", BookID: "Y", Score: 4},
		{UserID: "t", BookID: "Z", Score: 1},
		// n1 与 t 完全一致（相似度 1），额外给 G 打 4 分
		{UserID: "n1", BookID: "X", Score: 5},
		{UserID: "n1", BookID: "Y", Score: 4},
		{UserID: "n1", BookID: "Z", Score: 1},
		{UserID: "n1", BookID: "G", Score: 4},
		// n2 相关但不完全一致，给 G 打 5 分
		{UserID: "n2", BookID: "X", Score: 4},
		{UserID: "n2", BookID: "Y", Score: 3},
		{UserID: "n2", BookID: "Z", Score: 1},
		{UserID: "n2", BookID: "G", Score: 5},
	}
	for _, r := range ratings {
		if err := mem.AddRating(r); err != nil {
			t.Fatal(err)
		}
	}

	cf := &UserCF{Users: mem, Ratings: mem, TopK: 2}
	items, err := cf.Recall(context.Background(), &core.RecommendContext{UserID: "t"})
	if err != nil {
		t.Fatalf("Recall() error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "G" {
		t.Fatalf("expected single candidate G, got %v", items)
	}
	// 分数来自更相似的 n1（4 分），而不是 n2 的 5 分
	if items[0].Score != 4 {
		t.Errorf("expected score 4 from most similar neighbor, got %v", items[0].Score)
	}
	if lbl := items[0].Labels["neighbor"]; lbl.Value != "n1" {
		t.Errorf("expected contributor n1, got %q", lbl.Value)
	}
}

// 候选按近邻打分降序、同分按书 ID 升序
func TestUserCF_CandidateOrder(t *testing.T) {
	mem := store.NewMemory()
	for _, id := range []string{"t", "n"} {
		mem.AddUser(&core.User{ID: id, Name: id})
	}
	ratings := []core.Rating{
		{UserID: "t", BookID: "X", Score: 5},
		{UserID: "t", BookID: "Y", Score: 1},
		{UserID: "n", BookID: "X", Score: 5},
		{UserID: "n", BookID: "Y", Score: 1},
		{UserID: "n", BookID: "B2", Score: 4},
		{UserID: "n", BookID: "B1", Score: 4},
		{UserID: "n", BookID: "B3", Score: 5},
	}
	for _, r := range ratings {
		if err := mem.AddRating(r); err != nil {
			t.Fatal(err)
		}
	}

	cf := &UserCF{Users: mem, Ratings: mem, TopK: 1}
	items, err := cf.Recall(context.Background(), &core.RecommendContext{UserID: "t"})
	if err != nil {
		t.Fatalf("Recall() error: %v", err)
	}
	want := []string{"B3", "B1", "B2"}
	if len(items) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("expected order %v, got %v at %d", want, items[i].ID, i)
		}
	}
}

func TestUserCF_EmptyContext(t *testing.T) {
	mem := store.NewMemory()
	cf := &UserCF{Users: mem, Ratings: mem}

	items, err := cf.Recall(context.Background(), nil)
	if err != nil || items != nil {
		t.Fatalf("expected nil result for nil context, got %v, %v", items, err)
	}
}
