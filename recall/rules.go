package recall

import (
	"context"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/pipeline"
	"github.com/rushteam/tagmine/pkg/utils"
	"github.com/rushteam/tagmine/rule"
)

// RuleRecall 是规则召回源：对查询 Q，保留所有满足 Q ⊆ 前件 的规则，
// 规则后件中每个不在 Q 里的 hashtag 都成为一个候选，携带该规则的 (confidence, lift, support)。
//
// 同一 hashtag 可能被多条规则召回，这里不做合并，交给 rank + rerank.Dedup 处理：
// 先按指标排序，再保留每个 hashtag 的第一次出现，即"最佳解释胜出"。
//
// RuleRecall 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type RuleRecall struct {
	Rules []rule.Rule
}

func (r *RuleRecall) Name() string        { return "recall.rules" }
func (r *RuleRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *RuleRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *RuleRecall) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	var query core.Itemset
	if rctx != nil {
		query = rctx.Query
	}

	out := make([]*core.Item, 0)
	for _, rl := range Match(r.Rules, query) {
		for _, tag := range rl.Consequent {
			if query.Contains(tag) {
				continue
			}
			it := core.NewItem(tag)
			it.Score = rl.Confidence
			it.Features[core.FeatureConfidence] = rl.Confidence
			it.Features[core.FeatureLift] = rl.Lift
			it.Features[core.FeatureSupport] = rl.Support
			it.Features[core.FeatureLeverage] = rl.Leverage
			it.Meta["antecedent"] = rl.Antecedent
			it.Meta["consequent"] = rl.Consequent
			it.PutLabel("rule", utils.Label{Value: rl.String(), Source: "recall"})
			out = append(out, it)
		}
	}
	return out, nil
}

// Match 返回前件包含查询全部 hashtag 的规则（query ⊆ antecedent），保持输入顺序。
// 空查询匹配所有规则。
func Match(rules []rule.Rule, query core.Itemset) []rule.Rule {
	out := make([]rule.Rule, 0)
	for _, rl := range rules {
		if query.IsSubsetOf(rl.Antecedent) {
			out = append(out, rl)
		}
	}
	return out
}
