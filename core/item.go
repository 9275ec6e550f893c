package core

import "github.com/rushteam/bookrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选图书 ID、排序分数、元信息、标签。
// Labels 用于解释与观测；Score 用于排序决策——召回阶段是近邻打分，
// 热度重排之后是全局收藏量。
type Item struct {
	ID     string
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Book 返回重排阶段解析出的图书元数据；未解析时返回 nil。
func (it *Item) Book() *Book {
	if it.Meta == nil {
		return nil
	}
	if b, ok := it.Meta["book"].(*Book); ok {
		return b
	}
	return nil
}

// SetBook 把解析出的图书元数据挂到 Item 上。
func (it *Item) SetBook(b *Book) {
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	it.Meta["book"] = b
}
