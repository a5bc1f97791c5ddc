// Package recommend 把匹配查询的规则转化为去重、排序后的 hashtag 推荐。
//
// 推荐逻辑由 Pipeline 串联：
//
//	recall.RuleRecall  → 查询 ⊆ 前件 的规则，后件中不在查询里的 hashtag 成为候选
//	filter.FilterNode  → 剔除查询中已有 / 黑名单 / 表达式不满足的候选
//	rank.MetricNode    → 置信度、提升度、支持度降序，hashtag 升序
//	rerank.Dedup       → 每个 hashtag 只保留最佳解释
//	rerank.TopNNode    → 截断到 top_k
package recommend

import (
	"context"
	"slices"
	"time"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/filter"
	"github.com/rushteam/tagmine/pipeline"
	"github.com/rushteam/tagmine/pkg/metrics"
	"github.com/rushteam/tagmine/rank"
	"github.com/rushteam/tagmine/recall"
	"github.com/rushteam/tagmine/rerank"
	"github.com/rushteam/tagmine/rule"
)

// Recommendation 是一个推荐的 hashtag 及产生它的最佳规则。
type Recommendation struct {
	Hashtag    string       `json:"hashtag" yaml:"hashtag"`
	Confidence float64      `json:"confidence" yaml:"confidence"`
	Lift       float64      `json:"lift" yaml:"lift"`
	Support    float64      `json:"support" yaml:"support"`
	Antecedent core.Itemset `json:"antecedent" yaml:"antecedent"`
	Consequent core.Itemset `json:"consequent" yaml:"consequent"`
}

// ConfidencePct 返回 0–100 的置信度百分数。
func (r Recommendation) ConfidencePct(precision int) float64 {
	return core.Percent(r.Confidence, precision)
}

// SupportPct 返回 0–100 的支持度百分数。
func (r Recommendation) SupportPct(precision int) float64 {
	return core.Percent(r.Support, precision)
}

// Recommender 在规则召回之后执行一组可配置的 Node。
// Recommender 不缓存任何查询结果，可并发复用（前提是 Nodes 本身无状态）。
type Recommender struct {
	Nodes []pipeline.Node
}

// DefaultNodes 返回默认的召回后节点。
func DefaultNodes() []pipeline.Node {
	return []pipeline.Node{
		&filter.FilterNode{Filters: []filter.Filter{&filter.QueryFilter{}}},
		&rank.MetricNode{},
		&rerank.Dedup{},
		&rerank.TopNNode{},
	}
}

// New 创建 Recommender；不传 nodes 时使用 DefaultNodes。
func New(nodes ...pipeline.Node) *Recommender {
	if len(nodes) == 0 {
		nodes = DefaultNodes()
	}
	return &Recommender{Nodes: nodes}
}

// Recommend 是使用默认节点的便捷入口。
func Recommend(ctx context.Context, rules []rule.Rule, query []string, topK int) ([]Recommendation, error) {
	return New().Recommend(ctx, rules, query, topK)
}

// Recommend 为查询返回最多 topK 个推荐（topK <= 0 不截断）。
// 没有匹配规则或候选时返回空切片而不是错误。
//
// 无论 Nodes 如何配置，输出都按指标排序、每个 hashtag 只出现一次（最佳解释）并截断到 topK；
// 自定义节点只能在此之前过滤或改写候选。
func (r *Recommender) Recommend(ctx context.Context, rules []rule.Rule, query []string, topK int) ([]Recommendation, error) {
	defer metrics.ObserveStage("recommend", time.Now())

	rctx := core.NewRecommendContext(query, topK)
	p := &pipeline.Pipeline{}
	p.Append(&recall.RuleRecall{Rules: rules}).Append(r.Nodes...)

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	out := finalize(items, rctx)
	metrics.Recommendations.Add(float64(len(out)))
	return out, nil
}

// finalize 对节点链的输出执行排序、去重和截断。
func finalize(items []*core.Item, rctx *core.RecommendContext) []Recommendation {
	kept := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || rctx.Query.Contains(core.Normalize(it.ID)) {
			continue
		}
		kept = append(kept, it)
	}
	slices.SortStableFunc(kept, rank.CompareItems)

	seen := make(map[string]struct{}, len(kept))
	out := make([]Recommendation, 0, len(kept))
	for _, it := range kept {
		if rctx.TopK > 0 && len(out) >= rctx.TopK {
			break
		}
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, fromItem(it))
	}
	return out
}

func fromItem(it *core.Item) Recommendation {
	rec := Recommendation{
		Hashtag:    it.ID,
		Confidence: it.Feature(core.FeatureConfidence),
		Lift:       it.Feature(core.FeatureLift),
		Support:    it.Feature(core.FeatureSupport),
	}
	if a, ok := it.Meta["antecedent"].(core.Itemset); ok {
		rec.Antecedent = a
	}
	if c, ok := it.Meta["consequent"].(core.Itemset); ok {
		rec.Consequent = c
	}
	return rec
}

// MatchRules 返回 query ⊆ 前件 的规则，按置信度、提升度降序，最多 topK 条（<= 0 不截断）。
func MatchRules(rules []rule.Rule, query []string, topK int) []rule.Rule {
	matched := recall.Match(rules, core.NewItemset(query...))
	rule.Sort(matched)
	if topK > 0 && len(matched) > topK {
		matched = matched[:topK]
	}
	return matched
}
