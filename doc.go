// Package bookrec 是一个基于用户协同过滤的图书推荐核心（Book Recommender）。
//
// 设计要点：
// - 相似度选候选：用皮尔逊相关系数找打分行为相似的近邻，近邻喜欢而目标用户未读的书进入候选集
// - 热度定展示：最终展示顺序由全局收藏量决定；冷启动与空候选同样按热度兜底
// - 仓储接口化：核心只依赖 core 中的仓储接口（UserStore / RatingStore / BookStore），不绑定任何持久化框架
package bookrec

import "github.com/rushteam/bookrec/pipeline"

// 轻量 facade：便于用户直接 import "bookrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
