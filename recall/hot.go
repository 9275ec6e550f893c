package recall

import (
	"context"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/pkg/utils"
)

// Hot 是热度召回源：按收藏量降序返回 TopN 图书。
// 冷启动（用户没有任何打分）和协同过滤空候选时都用它兜底。
//
// 如果 Books 为空，使用内存中的 IDs 作为 fallback（demo / 配置驱动场景）。
// Hot 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Hot struct {
	Books core.BookStore

	// N 返回条数；<=0 时取默认 K
	N int

	// IDs 是静态 fallback 列表，仅在 Books 为空时生效
	IDs []string
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	n := r.N
	if n <= 0 {
		n = (&core.DefaultRecommendConfig{}).DefaultTopK()
	}

	if r.Books == nil {
		out := make([]*core.Item, 0, len(r.IDs))
		for i, id := range r.IDs {
			if i >= n {
				break
			}
			it := core.NewItem(id)
			it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
			out = append(out, it)
		}
		return out, nil
	}

	books, err := r.Books.TopByPopularity(ctx, n)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(books))
	for _, b := range books {
		it := core.NewItem(b.ID)
		it.Score = float64(b.Popularity)
		it.SetBook(b)
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
