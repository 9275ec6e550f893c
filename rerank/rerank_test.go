package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/store"
)

func TestPopularityNode_Process(t *testing.T) {
	mem := store.NewMemory()
	mem.AddBook(&core.Book{ID: "R", Title: "R", Popularity: 150})
	mem.AddBook(&core.Book{ID: "S", Title: "S", Popularity: 300})
	mem.AddBook(&core.Book{ID: "T", Title: "T", Popularity: 150})

	// 候选携带的是近邻打分；重排后展示顺序只看收藏量
	items := []*core.Item{}
	for id, score := range map[string]float64{"R": 5, "S": 3, "T": 4, "GONE": 5} {
		it := core.NewItem(id)
		it.Score = score
		items = append(items, it)
	}

	node := &PopularityNode{Books: mem}
	got, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	// GONE 在图书存储里不存在，被丢弃；R 和 T 同热度按 ID 升序
	want := []string{"S", "R", "T"}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected order %v, got %s at %d", want, got[i].ID, i)
		}
	}
	// 分数已被替换为收藏量，图书元数据已解析
	if got[0].Score != 300 {
		t.Errorf("expected popularity score 300, got %v", got[0].Score)
	}
	if b := got[0].Book(); b == nil || b.Title != "S" {
		t.Errorf("expected resolved book metadata, got %+v", b)
	}
}

func TestPopularityNode_Empty(t *testing.T) {
	node := &PopularityNode{Books: store.NewMemory()}
	got, err := node.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no items, got %d", len(got))
	}
}

func TestTopNNode_Process(t *testing.T) {
	items := []*core.Item{core.NewItem("1"), core.NewItem("2"), core.NewItem("3")}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "truncate", n: 2, want: 2},
		{name: "n larger than items", n: 10, want: 3},
		{name: "zero keeps all", n: 0, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			got, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process() error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d items, got %d", tt.want, len(got))
			}
		})
	}
}
