package filter

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/rushteam/tagmine/core"
)

// StoreAdapter 将 core.Store 适配为过滤器所需的存储接口。
// 黑名单以 JSON 数组形式保存在单个 key 下，例如 ["#follow4follow", "#like4like"]。
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建一个 core.Store 适配器。
func NewStoreAdapter(s core.Store) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetBlacklist 实现 BlacklistStore 接口；key 不存在时返回空列表。
func (a *StoreAdapter) GetBlacklist(ctx context.Context, key string) ([]string, error) {
	if a == nil || a.store == nil {
		return nil, nil
	}
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("decode blacklist %s: %w", key, err)
	}
	return tags, nil
}

// SetBlacklist 写入黑名单。
func (a *StoreAdapter) SetBlacklist(ctx context.Context, key string, hashtags []string) error {
	data, err := json.Marshal(hashtags)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, key, data)
}

var _ BlacklistStore = (*StoreAdapter)(nil)
