package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/bookrec/core"
)

// Memory 是内存实现的用户/评分/图书仓储，用于测试/开发/原型。
// 同时实现 core.UserStore、core.RatingStore、core.BookStore。
// 进程重启后数据丢失。
type Memory struct {
	mu      sync.RWMutex
	users   map[string]*core.User
	books   map[string]*core.Book
	ratings map[string]map[string]core.Rating // userID -> bookID -> rating
}

func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]*core.User),
		books:   make(map[string]*core.Book),
		ratings: make(map[string]map[string]core.Rating),
	}
}

// AddUser 写入（或覆盖）一个用户。
func (m *Memory) AddUser(u *core.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

// AddBook 写入（或覆盖）一本图书。
func (m *Memory) AddBook(b *core.Book) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[b.ID] = b
}

// AddRating 写入一条评分。(user, book) 唯一，重复写入覆盖旧值。
// 越界分数直接拒绝，保证存储内的数据始终合法。
func (m *Memory) AddRating(r core.Rating) error {
	if !core.ValidScore(r.Score) {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput,
			fmt.Sprintf("store: score %d out of range [%d, %d]", r.Score, core.MinScore, core.MaxScore))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ratings[r.UserID] == nil {
		m.ratings[r.UserID] = make(map[string]core.Rating)
	}
	m.ratings[r.UserID][r.BookID] = r
	return nil
}

func (m *Memory) GetUser(_ context.Context, userID string) (*core.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound,
			fmt.Sprintf("store: user %q not found", userID))
	}
	return u, nil
}

// ListUsers 按用户 ID 升序返回全部用户，保证遍历顺序可复现。
func (m *Memory) ListUsers(_ context.Context) ([]*core.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*core.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) AllRatingsByUser(_ context.Context) (map[string][]core.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]core.Rating, len(m.ratings))
	for userID, byBook := range m.ratings {
		rs := make([]core.Rating, 0, len(byBook))
		for _, r := range byBook {
			rs = append(rs, r)
		}
		out[userID] = rs
	}
	return out, nil
}

func (m *Memory) GetRating(_ context.Context, userID, bookID string) (*core.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if byBook, ok := m.ratings[userID]; ok {
		if r, ok := byBook[bookID]; ok {
			return &r, nil
		}
	}
	return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound,
		fmt.Sprintf("store: rating (%s, %s) not found", userID, bookID))
}

// TopByPopularity 按收藏量降序返回前 limit 本图书，同热度按书 ID 升序。
func (m *Memory) TopByPopularity(_ context.Context, limit int) ([]*core.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*core.Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Popularity != out[j].Popularity {
			return out[i].Popularity > out[j].Popularity
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetByIDs 批量获取图书，缺失的 ID 跳过。
func (m *Memory) GetByIDs(_ context.Context, ids []string) ([]*core.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*core.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := m.books[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

var (
	_ core.UserStore   = (*Memory)(nil)
	_ core.RatingStore = (*Memory)(nil)
	_ core.BookStore   = (*Memory)(nil)
)
