// Package profile 将外部评分存储中的打分记录物化为用户评分画像。
package profile

import (
	"context"
	"fmt"

	"github.com/rushteam/bookrec/core"
)

// Builder 构建全量用户评分画像。
type Builder struct {
	Users   core.UserStore
	Ratings core.RatingStore
}

// Build 返回 userID -> RatingProfile 的全量映射。
//
// 约定：所有已知用户都出现在结果中，没有打分的用户得到空画像，
// 下游组件无需做缺键检查。空的评分存储得到一组空画像，不是错误。
//
// 评分范围在这一边界校验：存储里出现越界分数视为脏数据，
// 返回 INVALID_INPUT，而不是默默信任存储内容。
func (b *Builder) Build(ctx context.Context) (map[string]core.RatingProfile, error) {
	users, err := b.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	grouped, err := b.Ratings.AllRatingsByUser(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]core.RatingProfile, len(users))
	for _, u := range users {
		p := make(core.RatingProfile)
		for _, r := range grouped[u.ID] {
			if !core.ValidScore(r.Score) {
				return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput,
					fmt.Sprintf("profile: rating (%s, %s) has score %d out of range [%d, %d]",
						r.UserID, r.BookID, r.Score, core.MinScore, core.MaxScore))
			}
			p[r.BookID] = r.Score
		}
		profiles[u.ID] = p
	}
	return profiles, nil
}
