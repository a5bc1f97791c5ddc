package rank

import (
	"cmp"
	"context"
	"slices"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/pipeline"
	"github.com/rushteam/tagmine/pkg/utils"
)

// MetricNode 按规则指标对候选排序：置信度降序、提升度降序、支持度降序，最后按 hashtag 升序。
// 排序键覆盖了全部指标和 hashtag，因此结果与输入顺序无关。
//   - 更新 item.Score = confidence
//   - 写入 labels：rank_metric
type MetricNode struct{}

func (n *MetricNode) Name() string        { return "rank.metric" }
func (n *MetricNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *MetricNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		it.Score = it.Feature(core.FeatureConfidence)
		it.PutLabel("rank_metric", utils.Label{Value: "confidence,lift,support", Source: "rank"})
		out = append(out, it)
	}

	slices.SortStableFunc(out, CompareItems)
	return out, nil
}

// CompareItems 是候选的排序规则。
func CompareItems(a, b *core.Item) int {
	if c := cmp.Compare(b.Feature(core.FeatureConfidence), a.Feature(core.FeatureConfidence)); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Feature(core.FeatureLift), a.Feature(core.FeatureLift)); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Feature(core.FeatureSupport), a.Feature(core.FeatureSupport)); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
