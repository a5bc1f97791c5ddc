package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/filter"
	"github.com/rushteam/tagmine/mining"
	"github.com/rushteam/tagmine/rank"
	"github.com/rushteam/tagmine/rerank"
	"github.com/rushteam/tagmine/rule"
	"github.com/rushteam/tagmine/transaction"
)

func scenarioRules(t *testing.T) []rule.Rule {
	t.Helper()
	set, err := transaction.New([][]string{{"a", "b", "c"}, {"a", "b"}, {"a", "c"}, {"b", "c"}})
	require.NoError(t, err)
	res, err := mining.Mine(context.Background(), set, 0.5)
	require.NoError(t, err)
	rules, err := rule.Generate(res, 0.5)
	require.NoError(t, err)
	return rules
}

func mkRule(a, c []string, conf, lift, support float64) rule.Rule {
	return rule.Rule{
		Antecedent: core.NewItemset(a...),
		Consequent: core.NewItemset(c...),
		Confidence: conf,
		Lift:       lift,
		Support:    support,
	}
}

func TestRecommend_ScenarioC(t *testing.T) {
	recs, err := Recommend(context.Background(), scenarioRules(t), []string{"a"}, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "b", recs[0].Hashtag)
	assert.InDelta(t, 0.5/0.75, recs[0].Confidence, 1e-12)
	assert.Equal(t, core.Itemset{"a"}, recs[0].Antecedent)
	assert.Equal(t, core.Itemset{"b"}, recs[0].Consequent)
}

func TestRecommend_BestExplanationWins(t *testing.T) {
	rules := []rule.Rule{
		mkRule([]string{"x"}, []string{"y"}, 0.6, 1.2, 0.3),
		mkRule([]string{"x", "z"}, []string{"y"}, 0.9, 1.1, 0.2),
		mkRule([]string{"x"}, []string{"y", "w"}, 0.9, 1.5, 0.1),
		mkRule([]string{"x"}, []string{"v"}, 0.9, 1.5, 0.25),
		mkRule([]string{"q"}, []string{"u"}, 1.0, 3.0, 0.5), // 前件不包含查询
	}

	recs, err := Recommend(context.Background(), rules, []string{" X "}, 10)
	require.NoError(t, err)

	got := make([]string, 0, len(recs))
	for _, r := range recs {
		got = append(got, r.Hashtag)
	}
	// v 与 y 置信度、提升度相同，v 支持度更高；w 与 y 完全相同时按 hashtag 升序
	assert.Equal(t, []string{"v", "w", "y"}, got)

	y := recs[2]
	assert.Equal(t, 0.9, y.Confidence)
	assert.Equal(t, 1.5, y.Lift)
	assert.Equal(t, core.Itemset{"w", "y"}, y.Consequent)
}

func TestRecommend_Exclusivity(t *testing.T) {
	rules := []rule.Rule{
		mkRule([]string{"a", "b"}, []string{"c", "a"}, 0.8, 1.2, 0.3), // 后件与查询重叠
		mkRule([]string{"a", "b"}, []string{"d"}, 0.7, 1.1, 0.2),
	}
	recs, err := Recommend(context.Background(), rules, []string{"a", "b"}, 0)
	require.NoError(t, err)
	for _, r := range recs {
		assert.NotContains(t, []string{"a", "b"}, r.Hashtag)
	}
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].Hashtag)
}

func TestRecommend_EmptyOutcomes(t *testing.T) {
	recs, err := Recommend(context.Background(), nil, []string{"a"}, 5)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	recs, err = Recommend(context.Background(), scenarioRules(t), []string{"nope"}, 5)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommend_EmptyQueryMatchesAll(t *testing.T) {
	recs, err := Recommend(context.Background(), scenarioRules(t), nil, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestRecommend_Deterministic(t *testing.T) {
	rules := scenarioRules(t)
	first, err := Recommend(context.Background(), rules, []string{"c"}, 5)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Recommend(context.Background(), rules, []string{"c"}, 5)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRecommender_CustomNodes(t *testing.T) {
	rules := []rule.Rule{
		mkRule([]string{"#food"}, []string{"#yum"}, 0.9, 1.4, 0.3),
		mkRule([]string{"#food"}, []string{"#follow4follow"}, 0.95, 1.1, 0.4),
		mkRule([]string{"#food"}, []string{"#dinner"}, 0.6, 0.9, 0.2),
	}
	r := New(
		&filter.FilterNode{Filters: []filter.Filter{
			&filter.QueryFilter{},
			filter.NewBlacklistFilter([]string{"#Follow4Follow"}, nil, ""),
			&filter.ExprFilter{Expr: "item.features.lift >= 1.0"},
		}},
		&rank.MetricNode{},
		&rerank.Dedup{},
		&rerank.TopNNode{},
	)

	recs, err := r.Recommend(context.Background(), rules, []string{"#food"}, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "#yum", recs[0].Hashtag)
	assert.Equal(t, 90.0, recs[0].ConfidencePct(2))
	assert.Equal(t, 30.0, recs[0].SupportPct(1))
}

func TestRecommender_OrderDedupTopKWithoutRerankNodes(t *testing.T) {
	rules := []rule.Rule{
		mkRule([]string{"x"}, []string{"y"}, 0.6, 1.2, 0.3),
		mkRule([]string{"x", "z"}, []string{"y"}, 0.9, 1.1, 0.2),
		mkRule([]string{"x"}, []string{"v"}, 0.8, 1.5, 0.25),
		mkRule([]string{"x"}, []string{"w"}, 0.7, 1.5, 0.25),
	}

	// 只有过滤节点：排序、去重、截断仍然生效
	r := New(&filter.FilterNode{Filters: []filter.Filter{&filter.QueryFilter{}}})
	recs, err := r.Recommend(context.Background(), rules, []string{"x"}, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "y", recs[0].Hashtag)
	assert.Equal(t, 0.9, recs[0].Confidence)
	assert.Equal(t, "v", recs[1].Hashtag)

	all, err := r.Recommend(context.Background(), rules, []string{"x"}, 0)
	require.NoError(t, err)
	got := make([]string, 0, len(all))
	for _, rec := range all {
		got = append(got, rec.Hashtag)
	}
	assert.Equal(t, []string{"y", "v", "w"}, got)
}

func TestRecommend_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Recommend(ctx, scenarioRules(t), []string{"a"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchRules(t *testing.T) {
	rules := []rule.Rule{
		mkRule([]string{"a"}, []string{"b"}, 0.5, 1.0, 0.2),
		mkRule([]string{"a", "c"}, []string{"b"}, 0.9, 1.0, 0.1),
		mkRule([]string{"c"}, []string{"a"}, 0.99, 2.0, 0.1),
	}
	got := MatchRules(rules, []string{"A"}, 0)
	require.Len(t, got, 2)
	assert.Equal(t, 0.9, got[0].Confidence)
	assert.Len(t, MatchRules(rules, []string{"a"}, 1), 1)
}

func TestEdges(t *testing.T) {
	rules := []rule.Rule{
		mkRule([]string{"a", "b"}, []string{"c"}, 0.7, 1, 0.1),
		mkRule([]string{"a"}, []string{"c"}, 0.9, 1, 0.1),
		mkRule([]string{"b"}, []string{"c", "d"}, 0.5, 1, 0.1),
	}
	assert.Equal(t, []Edge{
		{From: "a", To: "c", Weight: 0.9},
		{From: "b", To: "c", Weight: 0.7},
		{From: "b", To: "c, d", Weight: 0.5},
	}, Edges(rules))
	assert.Empty(t, Edges(nil))
}
