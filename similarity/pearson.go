// Package similarity 提供评分画像之间的相似度度量。
package similarity

import (
	"math"

	"github.com/rushteam/bookrec/core"
)

// Pearson 计算两个评分画像在公共图书上的皮尔逊相关系数，结果落在 [-1, 1]。
//
// 采用求和形式：在一次遍历中累积 n、Σx、Σy、Σxy、Σx²、Σy²，
//
//	分子 = Σxy − ΣxΣy/n
//	分母 = sqrt((Σx² − (Σx)²/n) · (Σy² − (Σy)²/n))
//
// 约定（退化输入不是错误）：
//   - 无公共图书（n == 0）：返回 0，没有比较基础
//   - 公共图书上任一方差为 0（全部同分，含只有一本公共图书）：返回 0
//
// 因此 Pearson(A, A) == 1 要求 A 至少有两本分数不同的图书；
// 只有一本公共图书时按零方差约定返回 0。
//
// 对称性：Pearson(a, b) 与 Pearson(b, a) 仅因求和顺序产生浮点级差异。
// Cauchy–Schwarz 保证数学上结果有界，这里仍对浮点漂移做防御性收敛。
func Pearson(a, b core.RatingProfile) float64 {
	var n int
	var sumX, sumY, sumXY, sumX2, sumY2 float64

	for bookID, x := range a {
		y, ok := b[bookID]
		if !ok {
			continue
		}
		fx, fy := float64(x), float64(y)
		n++
		sumXY += fx * fy
		sumX += fx
		sumY += fy
		sumX2 += fx * fx
		sumY2 += fy * fy
	}
	if n == 0 {
		return 0
	}

	fn := float64(n)
	numerator := sumXY - sumX*sumY/fn
	denominator := math.Sqrt((sumX2 - sumX*sumX/fn) * (sumY2 - sumY*sumY/fn))
	if denominator == 0 {
		return 0
	}

	r := numerator / denominator
	if r > 1 {
		r = 1
	}
	if r < -1 {
		r = -1
	}
	return r
}
