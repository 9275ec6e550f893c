package core

// 评分的合法范围（闭区间），业务约定为 1~5 星。
const (
	MinScore = 1
	MaxScore = 5
)

// Rating 是一条用户对图书的打分记录。
// (UserID, BookID) 唯一：一个用户对一本书最多打一次分。
// 对推荐核心而言评分只读，写入由外部评分存储负责。
type Rating struct {
	UserID string
	BookID string
	Score  int
}

// RatingProfile 是单个用户的评分画像：bookID -> score。
// 画像是派生数据，每次推荐请求从当前评分快照重建，不跨请求缓存，
// 因此不存在过期问题。没有打分的用户画像为空。
type RatingProfile map[string]int

// ValidScore 判断分数是否落在合法范围内。
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// Neighbor 是近邻选择的结果：与目标用户最相似的用户及其相似度。
// Similarity 落在 [-1, 1]，无比较基础时约定为 0。
type Neighbor struct {
	UserID     string
	Similarity float64
}
