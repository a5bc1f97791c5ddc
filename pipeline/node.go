package pipeline

import (
	"context"

	"github.com/rushteam/tagmine/core"
)

// Kind 用于标记 Node 类型，方便观测/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：由匹配的规则生成候选 hashtag
	KindFilter Kind = "filter" // 过滤阶段：剔除查询中已有的、黑名单中的候选
	KindRank   Kind = "rank"   // 排序阶段：按规则指标排序
	KindReRank Kind = "rerank" // 重排阶段：去重、截断
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态，方便 Recall 生成候选、Filter 剔除、Rank 排序、ReRank 去重截断。
// Node 不得修改上一阶段的输入切片，需要时返回新切片。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
