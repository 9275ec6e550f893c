package filter

import (
	"context"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pkg/dsl"
)

// RuleFilter 是基于 CEL 表达式的规则过滤器：表达式求值为 true 的物品被过滤。
// 用于业务侧的临时策略（例如屏蔽某个召回来源、卡掉低分候选），
// 不改代码即可上线/下线规则。
//
// 示例：
//
//	&filter.RuleFilter{Expr: `label.recall_source == "hot"`}
//	&filter.RuleFilter{Expr: `item.score < 3.0`}
type RuleFilter struct {
	Expr string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}
