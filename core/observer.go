package core

// Observer 是可选的观测钩子：输出相似度、候选量与兜底指标。
// 默认关闭（nil），不属于核心的功能契约——任何实现都不得影响推荐结果。
type Observer interface {
	// ObserveNeighbors 在近邻选择完成后回调，neighbors 按相似度降序
	ObserveNeighbors(targetUserID string, neighbors []Neighbor)

	// ObserveCandidates 在候选聚合完成后回调
	ObserveCandidates(targetUserID string, count int)

	// ObserveFallback 在走热度兜底时回调，reason 为 cold_start / empty_candidates
	ObserveFallback(targetUserID string, reason string)
}
