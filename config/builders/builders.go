// Package builders 在 init 中注册内置 Node 的构建逻辑。
// 配置驱动入口处 import _ 本包即可。
//
// 注意：recall.usercf 与 rerank.popularity 依赖仓储实例，无法从纯配置构建，
// 需要在代码中组装（见 service.Recommender）。
package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/bookrec/config"
	"github.com/rushteam/bookrec/filter"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/pkg/conv"
	"github.com/rushteam/bookrec/recall"
	"github.com/rushteam/bookrec/rerank"
)

func init() {
	config.Register("recall.hot", buildHotNode)
	config.Register("recall.fanout", buildFanoutNode)
	config.Register("filter", buildFilterNode)
	config.Register("rerank.topn", buildTopNNode)
}

func buildHotNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ids := conv.SliceAnyToString(cfg["ids"])
	if ids == nil {
		ids = []string{}
	}
	return &recall.Hot{
		N:   int(conv.ConfigGetInt64(cfg, "n", 0)),
		IDs: ids,
	}, nil
}

func buildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet[string](sourceMap, "type", "")
		switch sourceType {
		case "hot":
			ids := conv.SliceAnyToString(sourceMap["ids"])
			if ids == nil {
				ids = []string{}
			}
			sources = append(sources, &recall.Hot{IDs: ids})
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet[bool](cfg, "dedup", true),
		MergeStrategy: conv.ConfigGet[string](cfg, "merge_strategy", ""),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func buildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	exprs := conv.SliceAnyToString(cfg["rules"])
	filters := make([]filter.Filter, 0, len(exprs))
	for _, expr := range exprs {
		filters = append(filters, &filter.RuleFilter{Expr: expr})
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func buildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N: int(conv.ConfigGetInt64(cfg, "n", 0)),
	}, nil
}
