package core

import "context"

// 仓储接口定义在领域层（core），由基础设施层（store）实现。
// 遵循依赖倒置原则：核心算法只依赖这些接口，不感知任何持久化框架。
// store.Memory 与 store.Redis 均实现全部三个接口。

// UserStore 是用户仓储。
type UserStore interface {
	// GetUser 按 ID 获取用户；不存在时返回 NOT_FOUND
	GetUser(ctx context.Context, userID string) (*User, error)

	// ListUsers 返回全部已知用户（构建全量评分画像用）
	ListUsers(ctx context.Context) ([]*User, error)
}

// RatingStore 是评分仓储。
type RatingStore interface {
	// AllRatingsByUser 返回按用户分组的全部评分快照。
	// 没有打分的用户可以缺席，也可以映射为空切片，两者等价——
	// 画像构建按已知用户集合遍历，不依赖这张表的键集合。
	AllRatingsByUser(ctx context.Context) (map[string][]Rating, error)

	// GetRating 查询单条评分（低分过滤用）；未评分时返回 NOT_FOUND
	GetRating(ctx context.Context, userID, bookID string) (*Rating, error)
}

// BookStore 是图书仓储。
type BookStore interface {
	// TopByPopularity 按收藏量降序返回前 limit 本图书（冷启动/兜底用）
	TopByPopularity(ctx context.Context, limit int) ([]*Book, error)

	// GetByIDs 批量获取图书元数据；缺失的 ID 直接跳过，不报错
	GetByIDs(ctx context.Context, ids []string) ([]*Book, error)
}
