package service

import (
	"go.uber.org/zap"

	"github.com/rushteam/bookrec/core"
)

// ZapObserver 是 core.Observer 的 zap 实现：以结构化日志输出相似度、
// 候选量与兜底指标，替代散落的调试打印。只写日志，不改变任何推荐结果。
type ZapObserver struct {
	logger *zap.Logger
}

func NewZapObserver(logger *zap.Logger) *ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) ObserveNeighbors(targetUserID string, neighbors []core.Neighbor) {
	fields := []zap.Field{
		zap.String("user_id", targetUserID),
		zap.Int("neighbor_count", len(neighbors)),
	}
	if len(neighbors) > 0 {
		fields = append(fields,
			zap.String("top_neighbor", neighbors[0].UserID),
			zap.Float64("top_similarity", neighbors[0].Similarity),
		)
	}
	o.logger.Debug("neighbors selected", fields...)
}

func (o *ZapObserver) ObserveCandidates(targetUserID string, count int) {
	o.logger.Debug("candidates aggregated",
		zap.String("user_id", targetUserID),
		zap.Int("candidate_count", count),
	)
}

func (o *ZapObserver) ObserveFallback(targetUserID string, reason string) {
	o.logger.Debug("popularity fallback",
		zap.String("user_id", targetUserID),
		zap.String("reason", reason),
	)
}

var _ core.Observer = (*ZapObserver)(nil)
