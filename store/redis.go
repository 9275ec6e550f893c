package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/bookrec/core"
)

// Redis 是 Redis 实现的用户/评分/图书仓储，生产环境常用。
// 同时实现 core.UserStore、core.RatingStore、core.BookStore。
//
// 键布局：
//
//	user:{id}        -> JSON 序列化的 User
//	users            -> set，全部用户 ID
//	book:{id}        -> JSON 序列化的 Book
//	book:popularity  -> zset，member=bookID score=收藏量
//	rating:{userID}  -> hash，field=bookID value=score
type Redis struct {
	client *redis.Client
}

func NewRedis(addr string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) GetUser(ctx context.Context, userID string) (*core.User, error) {
	data, err := r.client.Get(ctx, "user:"+userID).Bytes()
	if err == redis.Nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound,
			fmt.Sprintf("store: user %q not found", userID))
	}
	if err != nil {
		return nil, err
	}
	var u core.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers 按用户 ID 升序返回全部用户。
func (r *Redis) ListUsers(ctx context.Context) ([]*core.User, error) {
	ids, err := r.client.SMembers(ctx, "users").Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	out := make([]*core.User, 0, len(ids))
	for _, id := range ids {
		u, err := r.GetUser(ctx, id)
		if err != nil {
			// users 集合和 user:{id} 之间出现不一致：跳过悬挂 ID
			if core.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *Redis) AllRatingsByUser(ctx context.Context) (map[string][]core.Rating, error) {
	ids, err := r.client.SMembers(ctx, "users").Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string][]core.Rating, len(ids))
	for _, userID := range ids {
		fields, err := r.client.HGetAll(ctx, "rating:"+userID).Result()
		if err != nil {
			return nil, err
		}
		rs := make([]core.Rating, 0, len(fields))
		for bookID, raw := range fields {
			score, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("store: malformed rating (%s, %s): %w", userID, bookID, err)
			}
			rs = append(rs, core.Rating{UserID: userID, BookID: bookID, Score: score})
		}
		out[userID] = rs
	}
	return out, nil
}

func (r *Redis) GetRating(ctx context.Context, userID, bookID string) (*core.Rating, error) {
	raw, err := r.client.HGet(ctx, "rating:"+userID, bookID).Result()
	if err == redis.Nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound,
			fmt.Sprintf("store: rating (%s, %s) not found", userID, bookID))
	}
	if err != nil {
		return nil, err
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("store: malformed rating (%s, %s): %w", userID, bookID, err)
	}
	return &core.Rating{UserID: userID, BookID: bookID, Score: score}, nil
}

// TopByPopularity 按收藏量降序返回前 limit 本图书。
// zset 已经按分数排好，这里仍按统一的平手规则（同热度书 ID 升序）重排，
// 保证不同后端产出同一份顺序。
func (r *Redis) TopByPopularity(ctx context.Context, limit int) ([]*core.Book, error) {
	stop := int64(limit - 1)
	if limit <= 0 {
		stop = -1
	}
	ids, err := r.client.ZRevRange(ctx, "book:popularity", 0, stop).Result()
	if err != nil {
		return nil, err
	}

	books, err := r.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(books, func(i, j int) bool {
		if books[i].Popularity != books[j].Popularity {
			return books[i].Popularity > books[j].Popularity
		}
		return books[i].ID < books[j].ID
	})
	return books, nil
}

// GetByIDs 批量获取图书（MGET，减少网络往返），缺失的 ID 跳过。
func (r *Redis) GetByIDs(ctx context.Context, ids []string) ([]*core.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, "book:"+id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*core.Book, 0, len(ids))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var b core.Book
		if err := json.Unmarshal([]byte(s), &b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, nil
}

// SeedUser 写入用户（运维/数据导入用）。
func (r *Redis) SeedUser(ctx context.Context, u *core.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	pipe := r.client.Pipeline()
	pipe.Set(ctx, "user:"+u.ID, data, 0)
	pipe.SAdd(ctx, "users", u.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// SeedBook 写入图书并同步热度 zset。
func (r *Redis) SeedBook(ctx context.Context, b *core.Book) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	pipe := r.client.Pipeline()
	pipe.Set(ctx, "book:"+b.ID, data, 0)
	pipe.ZAdd(ctx, "book:popularity", redis.Z{Score: float64(b.Popularity), Member: b.ID})
	_, err = pipe.Exec(ctx)
	return err
}

// SeedRating 写入评分。越界分数直接拒绝。
func (r *Redis) SeedRating(ctx context.Context, rating core.Rating) error {
	if !core.ValidScore(rating.Score) {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput,
			fmt.Sprintf("store: score %d out of range [%d, %d]", rating.Score, core.MinScore, core.MaxScore))
	}
	return r.client.HSet(ctx, "rating:"+rating.UserID, rating.BookID, rating.Score).Err()
}

var (
	_ core.UserStore   = (*Redis)(nil)
	_ core.RatingStore = (*Redis)(nil)
	_ core.BookStore   = (*Redis)(nil)
)
