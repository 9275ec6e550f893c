package core

// User 是评分行为的主体，由外部用户存储负责维护。
type User struct {
	ID   string
	Name string
}
