package recall

import (
	"context"
	"sort"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/pkg/utils"
	"github.com/rushteam/bookrec/profile"
)

// UserCF 是基于用户的协同过滤召回源（User-based Collaborative Filtering）。
//
// 核心思想："打分行为相似的用户，喜欢相似的书"
//
// 算法流程：
//  1. 物化全量用户评分画像（所有已知用户，未打分者为空画像）
//  2. 与目标用户逐一计算皮尔逊相似度，取 TopK 近邻
//  3. 按近邻相似度从高到低，收集目标用户未读、且贡献近邻自己打分
//     不低于 LikeThreshold 的书作为候选；同一本书首个出现的近邻胜出，
//     后续较不相似近邻的重复贡献直接丢弃，不做合并或平均
//  4. 候选按近邻打分降序返回（最终展示顺序由热度重排决定，不在这里截断）
//
// 画像、相似度、候选都是本次调用内的派生数据，不跨请求缓存。
type UserCF struct {
	Users   core.UserStore
	Ratings core.RatingStore

	// TopK 近邻数量；<=0 时取 core.DefaultRecommendConfig 的默认值
	TopK int

	// LikeThreshold 低分过滤阈值；<=0 时取默认值。
	// 近邻打分低于该值的书视为近邻不喜欢，即便画像分本身会用于排序，
	// 也不向其他用户扩散
	LikeThreshold int

	// Observer 可选观测钩子，nil 时关闭
	Observer core.Observer
}

func (r *UserCF) Name() string        { return "recall.usercf" }
func (r *UserCF) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *UserCF) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *UserCF) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Users == nil || r.Ratings == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	builder := &profile.Builder{Users: r.Users, Ratings: r.Ratings}
	profiles, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}

	topK := r.TopK
	if topK <= 0 {
		topK = (&core.DefaultRecommendConfig{}).DefaultTopK()
	}

	neighbors := NearestNeighbors(rctx.UserID, profiles, topK)
	if r.Observer != nil {
		r.Observer.ObserveNeighbors(rctx.UserID, neighbors)
	}

	items, err := r.aggregate(ctx, profiles[rctx.UserID], profiles, neighbors)
	if err != nil {
		return nil, err
	}
	if r.Observer != nil {
		r.Observer.ObserveCandidates(rctx.UserID, len(items))
	}
	return items, nil
}

// aggregate 按近邻顺序（最相似者优先）合并候选：
//   - 目标用户已读的书跳过
//   - 已被更相似近邻贡献过的书跳过（首个胜出）
//   - 贡献近邻自己打分低于阈值的书跳过（低分过滤，查评分存储）
//
// 候选分数取贡献近邻的画像分，结果按分数降序、同分按书 ID 升序。
func (r *UserCF) aggregate(
	ctx context.Context,
	target core.RatingProfile,
	profiles map[string]core.RatingProfile,
	neighbors []core.Neighbor,
) ([]*core.Item, error) {
	like := r.LikeThreshold
	if like <= 0 {
		like = (&core.DefaultRecommendConfig{}).DefaultLikeThreshold()
	}

	scores := make(map[string]int)
	contributor := make(map[string]string)

	for _, nb := range neighbors {
		p := profiles[nb.UserID]

		// 画像是 map，遍历顺序不可复现；按书 ID 升序保证同一近邻内的处理顺序确定
		bookIDs := make([]string, 0, len(p))
		for bookID := range p {
			bookIDs = append(bookIDs, bookID)
		}
		sort.Strings(bookIDs)

		for _, bookID := range bookIDs {
			if _, rated := target[bookID]; rated {
				continue
			}
			if _, dup := scores[bookID]; dup {
				continue
			}

			// 低分过滤：近邻自己都不喜欢的书不扩散。
			// 评分记录缺失不算低分（与画像不一致只可能来自两次读取之间的写入），
			// 但存储 I/O 失败必须透传，不能折叠成"未评分"
			rating, err := r.Ratings.GetRating(ctx, nb.UserID, bookID)
			if err != nil && !core.IsNotFound(err) {
				return nil, err
			}
			if err == nil && rating.Score < like {
				continue
			}

			scores[bookID] = p[bookID]
			contributor[bookID] = nb.UserID
		}
	}

	out := make([]*core.Item, 0, len(scores))
	for bookID, score := range scores {
		it := core.NewItem(bookID)
		it.Score = float64(score)
		it.PutLabel("recall_source", utils.Label{Value: "usercf", Source: "recall"})
		it.PutLabel("neighbor", utils.Label{Value: contributor[bookID], Source: "recall"})
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
