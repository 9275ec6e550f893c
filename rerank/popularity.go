package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/pkg/utils"
)

// PopularityNode 把候选图书解析成完整元数据，并按全局收藏量降序重排。
//
// 这是两阶段设计的第二阶段：相似度负责筛出候选集合，热度决定展示顺序。
// 候选在召回阶段携带的近邻打分到这里被替换为收藏量，两者不能合并成
// 单一排序。收藏量相同的按书 ID 升序，保证可复现。
//
// 图书存储里解析不到的 ID 直接丢弃（候选引用了已下架的书）。
type PopularityNode struct {
	Books core.BookStore
}

func (n *PopularityNode) Name() string {
	return "rerank.popularity"
}

func (n *PopularityNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *PopularityNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Books == nil || len(items) == 0 {
		return items, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it != nil {
			ids = append(ids, it.ID)
		}
	}

	books, err := n.Books.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*core.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		b, ok := byID[it.ID]
		if !ok {
			continue
		}
		it.SetBook(b)
		it.Score = float64(b.Popularity)
		it.PutLabel("rerank", utils.Label{Value: "popularity", Source: "rerank"})
		out = append(out, it)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
