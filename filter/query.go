package filter

import (
	"context"

	"github.com/rushteam/tagmine/core"
)

// QueryFilter 过滤掉查询中已经存在的 hashtag：推荐结果永远不包含种子 hashtag。
type QueryFilter struct{}

func (f *QueryFilter) Name() string {
	return "filter.query"
}

func (f *QueryFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil {
		return false, nil
	}
	return rctx.Query.Contains(core.Normalize(item.ID)), nil
}
