package recall

import (
	"context"

	"github.com/rushteam/bookrec/core"
)

// Source 是召回源的抽象：为目标用户生成候选图书集合。
// 召回源同时实现 pipeline.Node，即可直接在 Pipeline 中使用。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
