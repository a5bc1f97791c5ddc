// Package store 提供 core.Store 的实现：MemoryStore（测试/单机）与 RedisStore（生产/共享缓存）。
//
// 挖掘核心不依赖 Store；它只服务于调用方控制的记忆化缓存（memo 包）和黑名单等外部数据。
//
// 示例：
//
//	var s core.Store = store.NewMemoryStore()
//	defer s.Close()
package store

import "github.com/rushteam/tagmine/core"

// ErrNotFound 表示 key 不存在（与 core.ErrStoreNotFound 相同）。
var ErrNotFound = core.ErrStoreNotFound
