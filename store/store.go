package store

// 注意：此包只包含实现，仓储接口定义在 core 包。
// 使用 core.UserStore / core.RatingStore / core.BookStore 接口。
//
// 示例：
//   var users core.UserStore = store.NewMemory()
//   var books core.BookStore = store.NewMemory()
