// Package rule 从频繁项集推导有向关联规则，并计算置信度、提升度等指标。
package rule

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/rushteam/tagmine/core"
)

// Rule 是关联规则 Antecedent => Consequent。
//
//   - Support：并集的支持度
//   - Confidence：support(A ∪ C) / support(A)
//   - Lift：Confidence / support(C)，< 1 表示 C 在 A 出现时反而更少见
//   - Leverage：support(A ∪ C) - support(A)·support(C)
type Rule struct {
	Antecedent        core.Itemset `json:"antecedent" yaml:"antecedent"`
	Consequent        core.Itemset `json:"consequent" yaml:"consequent"`
	AntecedentSupport float64      `json:"antecedent_support" yaml:"antecedent_support"`
	ConsequentSupport float64      `json:"consequent_support" yaml:"consequent_support"`
	Support           float64      `json:"support" yaml:"support"`
	Confidence        float64      `json:"confidence" yaml:"confidence"`
	Lift              float64      `json:"lift" yaml:"lift"`
	Leverage          float64      `json:"leverage" yaml:"leverage"`
}

// String 返回 "a, b => c" 形式。
func (r Rule) String() string {
	return r.Antecedent.String() + " => " + r.Consequent.String()
}

// Informative 判断规则是否有推荐价值（lift >= 1）。
func (r Rule) Informative() bool {
	return r.Lift >= 1
}

// vars 返回 CEL 表达式中 rule 变量的取值。
func (r Rule) vars() map[string]any {
	return map[string]any{
		"antecedent":         []string(r.Antecedent),
		"consequent":         []string(r.Consequent),
		"antecedent_support": r.AntecedentSupport,
		"consequent_support": r.ConsequentSupport,
		"support":            r.Support,
		"confidence":         r.Confidence,
		"lift":               r.Lift,
		"leverage":           r.Leverage,
	}
}

// Compare 是规则的排序：置信度降序、提升度降序、支持度降序，
// 再按前件、后件的规范顺序，保证结果可复现。
func Compare(a, b Rule) int {
	if c := cmp.Compare(b.Confidence, a.Confidence); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Lift, a.Lift); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Support, a.Support); c != 0 {
		return c
	}
	if c := core.CompareItemsets(a.Antecedent, b.Antecedent); c != 0 {
		return c
	}
	return core.CompareItemsets(a.Consequent, b.Consequent)
}

// Sort 按 Compare 原地排序。
func Sort(rules []Rule) {
	slices.SortStableFunc(rules, Compare)
}

// Explanation 是规则的展示用解释，百分比为 0–100。
type Explanation struct {
	Rule          string  `json:"rule" yaml:"rule"`
	SupportPct    float64 `json:"support_pct" yaml:"support_pct"`
	ConfidencePct float64 `json:"confidence_pct" yaml:"confidence_pct"`
	Lift          float64 `json:"lift" yaml:"lift"`
	Text          string  `json:"text" yaml:"text"`
}

// Explain 生成规则解释，数值按 precision 位小数舍入。
func Explain(r Rule, precision int) Explanation {
	e := Explanation{
		Rule:          r.String(),
		SupportPct:    core.Percent(r.Support, precision),
		ConfidencePct: core.Percent(r.Confidence, precision),
		Lift:          core.Round(r.Lift, precision),
	}
	p := max(precision, 0)
	e.Text = fmt.Sprintf(
		"If a post uses [%s], then it is likely to also use [%s]. "+
			"Support: %.*f%% of all posts. Confidence: in %.*f%% of those cases [%s] also appeared. "+
			"Lift: %.*f (how much more likely than random chance).",
		r.Antecedent, r.Consequent,
		p, e.SupportPct, p, e.ConfidencePct, r.Consequent, p, e.Lift,
	)
	return e
}
