package core

// RecommendConfig 是推荐相关的配置接口，用于提供默认值。
type RecommendConfig interface {
	// DefaultTopK 返回默认的 K：近邻数量与最终返回条数复用同一个常量
	DefaultTopK() int

	// DefaultLikeThreshold 返回低分过滤阈值：
	// 近邻打分低于该值的书视为近邻不喜欢，不向外扩散
	DefaultLikeThreshold() int
}

// DefaultRecommendConfig 是默认的推荐配置实现。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultTopK() int {
	return 15
}

func (c *DefaultRecommendConfig) DefaultLikeThreshold() int {
	return 3
}
