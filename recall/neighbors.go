package recall

import (
	"sort"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/similarity"
)

// NearestNeighbors 对目标用户之外的每个用户计算皮尔逊相似度，
// 按相似度降序返回前 n 个近邻；候选不足 n 个时返回全部。
// 目标用户永远不会出现在自己的近邻里。
//
// 相似度相同的按用户 ID 升序排列：map 遍历顺序不可复现，
// 必须用确定性的平手规则保证同一份数据产出同一份近邻序列。
func NearestNeighbors(targetUserID string, profiles map[string]core.RatingProfile, n int) []core.Neighbor {
	target := profiles[targetUserID]

	neighbors := make([]core.Neighbor, 0, len(profiles))
	for userID, p := range profiles {
		if userID == targetUserID {
			continue
		}
		neighbors = append(neighbors, core.Neighbor{
			UserID:     userID,
			Similarity: similarity.Pearson(target, p),
		})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].UserID < neighbors[j].UserID
	})

	if n > 0 && len(neighbors) > n {
		neighbors = neighbors[:n]
	}
	return neighbors
}
