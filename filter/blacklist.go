package filter

import (
	"context"

	"github.com/rushteam/tagmine/core"
)

// BlacklistFilter 是黑名单过滤器，过滤掉不希望被推荐的 hashtag（如刷量标签）。
type BlacklistFilter struct {
	// Hashtags 是内存中的黑名单
	Hashtags []string

	// Store 用于从存储中读取黑名单（可选）
	Store BlacklistStore

	// Key 是 Store 中的黑名单 key（可选）
	Key string

	set map[string]struct{}
}

// BlacklistStore 是黑名单存储接口。
type BlacklistStore interface {
	// GetBlacklist 获取黑名单 hashtag 列表
	GetBlacklist(ctx context.Context, key string) ([]string, error)
}

// NewBlacklistFilter 创建一个黑名单过滤器，hashtag 会被归一化。
func NewBlacklistFilter(hashtags []string, storeAdapter *StoreAdapter, key string) *BlacklistFilter {
	var store BlacklistStore
	if storeAdapter != nil {
		store = storeAdapter
	}
	f := &BlacklistFilter{
		Hashtags: hashtags,
		Store:    store,
		Key:      key,
		set:      make(map[string]struct{}, len(hashtags)),
	}
	for _, tag := range hashtags {
		f.set[core.Normalize(tag)] = struct{}{}
	}
	return f
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	id := core.Normalize(item.ID)

	// 从内存列表检查
	if f.set != nil {
		if _, ok := f.set[id]; ok {
			return true, nil
		}
	} else {
		for _, tag := range f.Hashtags {
			if core.Normalize(tag) == id {
				return true, nil
			}
		}
	}

	// 从 Store 检查
	if f.Store != nil && f.Key != "" {
		blacklist, err := f.Store.GetBlacklist(ctx, f.Key)
		if err != nil {
			return false, err
		}
		for _, tag := range blacklist {
			if core.Normalize(tag) == id {
				return true, nil
			}
		}
	}

	return false, nil
}
