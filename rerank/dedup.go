package rerank

import (
	"context"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/pipeline"
)

// Dedup 按 hashtag 去重，保留第一次出现的候选。
// 放在 rank.MetricNode 之后使用时，保留的就是置信度最高（再按 lift、support）的那条解释；
// 被丢弃候选的 rule label 合并到保留者上，便于 explain。
type Dedup struct{}

func (n *Dedup) Name() string        { return "rerank.dedup" }
func (n *Dedup) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Dedup) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	seen := make(map[string]*core.Item, len(items))
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if kept, ok := seen[it.ID]; ok {
			if lbl, ok := it.Labels["rule"]; ok {
				kept.PutLabel("also_rule", lbl)
			}
			continue
		}
		seen[it.ID] = it
		out = append(out, it)
	}
	return out, nil
}
