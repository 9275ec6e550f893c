// Package service 提供面向调用方的推荐编排。
package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/recall"
	"github.com/rushteam/bookrec/rerank"
)

// Recommender 把画像构建、近邻选择、候选聚合与热度兜底编排成
// 单个"为用户 X 推荐图书"的操作。
//
// 单次请求的状态机：
//
//	无打分历史 → 热度兜底（冷启动，完全跳过相似度计算）
//	有打分历史 → 协同过滤 → 候选非空 → 解析元数据、按收藏量重排、截断到 K
//	                       → 候选为空 → 热度兜底
//
// Recommender 无状态：每次请求独立重读评分快照并重算画像与相似度，
// 请求之间不共享任何派生数据。
type Recommender struct {
	users   core.UserStore
	ratings core.RatingStore
	books   core.BookStore

	topK     int
	like     int
	observer core.Observer
}

// Option 配置 Recommender 的可选项。
type Option func(*Recommender)

// WithTopK 设置 K：近邻数量与默认返回条数复用同一个常量。
func WithTopK(k int) Option {
	return func(r *Recommender) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithLikeThreshold 设置低分过滤阈值。
func WithLikeThreshold(score int) Option {
	return func(r *Recommender) {
		if score > 0 {
			r.like = score
		}
	}
}

// WithObserver 挂载观测钩子。默认关闭，任何实现都不影响推荐结果。
func WithObserver(ob core.Observer) Option {
	return func(r *Recommender) {
		r.observer = ob
	}
}

func NewRecommender(users core.UserStore, ratings core.RatingStore, books core.BookStore, opts ...Option) *Recommender {
	cfg := &core.DefaultRecommendConfig{}
	r := &Recommender{
		users:   users,
		ratings: ratings,
		books:   books,
		topK:    cfg.DefaultTopK(),
		like:    cfg.DefaultLikeThreshold(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecommendForUser 是核心对外的唯一入口。
//
// limit <= 0 时使用配置的 K（默认 15）；limit 同时也是近邻数量。
// 未知用户返回 NOT_FOUND；存储 I/O 失败原样透传，不会被当成空数据。
func (r *Recommender) RecommendForUser(ctx context.Context, userID string, limit int) ([]*core.Book, error) {
	if limit <= 0 {
		limit = r.topK
	}

	// 用户存在性校验和评分快照互不依赖，并行读取
	var grouped map[string][]core.Rating
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		_, err := r.users.GetUser(egCtx, userID)
		return err
	})
	eg.Go(func() error {
		var err error
		grouped, err = r.ratings.AllRatingsByUser(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 冷启动：没有任何打分，按热度返回，完全不走相似度计算
	if len(grouped[userID]) == 0 {
		return r.fallback(ctx, userID, limit, "cold_start")
	}

	cf := &recall.UserCF{
		Users:         r.users,
		Ratings:       r.ratings,
		TopK:          limit,
		LikeThreshold: r.like,
		Observer:      r.observer,
	}
	rctx := &core.RecommendContext{UserID: userID, Scene: "recommend"}
	candidates, err := cf.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}

	// 没有任何近邻贡献出可用候选，同样落到热度兜底
	if len(candidates) == 0 {
		return r.fallback(ctx, userID, limit, "empty_candidates")
	}

	// 最终展示顺序由全局收藏量决定，而不是聚合时的近邻打分；
	// 相似度选候选、热度定展示是有意的两阶段设计
	items, err := (&rerank.PopularityNode{Books: r.books}).Process(ctx, rctx, candidates)
	if err != nil {
		return nil, err
	}
	items, err = (&rerank.TopNNode{N: limit}).Process(ctx, rctx, items)
	if err != nil {
		return nil, err
	}

	books := make([]*core.Book, 0, len(items))
	for _, it := range items {
		if b := it.Book(); b != nil {
			books = append(books, b)
		}
	}
	return books, nil
}

func (r *Recommender) fallback(ctx context.Context, userID string, limit int, reason string) ([]*core.Book, error) {
	if r.observer != nil {
		r.observer.ObserveFallback(userID, reason)
	}
	return r.books.TopByPopularity(ctx, limit)
}
