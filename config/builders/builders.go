// Package builders 注册内置 Node 的配置构建器。
package builders

import (
	"fmt"

	"github.com/rushteam/tagmine/config"
	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/filter"
	"github.com/rushteam/tagmine/pipeline"
	"github.com/rushteam/tagmine/pkg/conv"
	"github.com/rushteam/tagmine/pkg/dsl"
	"github.com/rushteam/tagmine/rank"
	"github.com/rushteam/tagmine/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("rank.metric", BuildMetricNode)
	config.Register("rerank.dedup", BuildDedupNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// BuildFilterNode 构建过滤节点。filters 为空时只排除查询中的 hashtag。
//
//	filters:
//	  - type: query
//	  - type: blacklist
//	    hashtags: ["#follow4follow"]
//	    key: tagmine:blacklist   # 可选，从注入的 Store 读取 JSON 数组
//	  - type: expr
//	    expr: item.features.lift >= 1.2
//	    invert: false
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	specs, err := conv.ConfigGetMaps(cfg, "filters")
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return &filter.FilterNode{Filters: []filter.Filter{&filter.QueryFilter{}}}, nil
	}

	filters := make([]filter.Filter, 0, len(specs))
	for _, fc := range specs {
		switch t := conv.ConfigGet(fc, "type", ""); t {
		case "query":
			filters = append(filters, &filter.QueryFilter{})
		case "blacklist":
			bl, err := buildBlacklist(cfg, fc)
			if err != nil {
				return nil, err
			}
			filters = append(filters, bl)
		case "expr":
			expr := conv.ConfigGet(fc, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("expr filter: expr is required")
			}
			if _, err := dsl.Compile(expr); err != nil {
				return nil, fmt.Errorf("expr filter: %w", err)
			}
			filters = append(filters, &filter.ExprFilter{
				Expr:   expr,
				Invert: conv.ConfigGet(fc, "invert", false),
			})
		default:
			return nil, fmt.Errorf("unknown filter type: %q", t)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func buildBlacklist(cfg, fc map[string]any) (*filter.BlacklistFilter, error) {
	hashtags := conv.SliceAnyToString(fc["hashtags"])
	key := conv.ConfigGet(fc, "key", "")
	if key == "" {
		return filter.NewBlacklistFilter(hashtags, nil, ""), nil
	}
	s, ok := cfg[config.StoreKey].(core.Store)
	if !ok || s == nil {
		return nil, fmt.Errorf("blacklist filter: key %q requires a store", key)
	}
	return filter.NewBlacklistFilter(hashtags, filter.NewStoreAdapter(s), key), nil
}

func BuildMetricNode(map[string]any) (pipeline.Node, error) {
	return &rank.MetricNode{}, nil
}

func BuildDedupNode(map[string]any) (pipeline.Node, error) {
	return &rerank.Dedup{}, nil
}

// BuildTopNNode 构建截断节点；n 缺省或 <= 0 时使用请求的 top_k。
func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}
