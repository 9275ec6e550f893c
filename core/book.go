package core

// Book 是推荐链路中的物品实体（图书）。
// Popularity 是单调递增的收藏量计数，只参与热度排序与最终展示排序，
// 不参与相似度计算。
type Book struct {
	ID         string
	Title      string
	Author     string
	Popularity int64
}
