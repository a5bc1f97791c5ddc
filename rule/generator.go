package rule

import (
	"time"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/mining"
	"github.com/rushteam/tagmine/pkg/dsl"
	"github.com/rushteam/tagmine/pkg/logging"
	"github.com/rushteam/tagmine/pkg/metrics"
)

// maxItemsetLen 是单个频繁项集允许的最大基数（子集用 uint64 位掩码枚举）。
const maxItemsetLen = 63

// Options 是规则生成参数。
type Options struct {
	// MinConfidence 最小置信度，必须在 (0,1]
	MinConfidence float64

	// InformativeOnly 只保留 lift >= 1 的规则
	InformativeOnly bool

	// Expr 可选的 CEL 过滤表达式，例如 `rule.lift > 1.5 && "#ai" in rule.antecedent`
	Expr string
}

// Generator 是关联规则生成器。无状态，可并发复用。
type Generator struct {
	opts Options
}

// NewGenerator 创建规则生成器。
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate 是便捷入口。
func Generate(frequent *mining.Result, minConfidence float64) ([]Rule, error) {
	return NewGenerator(Options{MinConfidence: minConfidence}).Generate(frequent)
}

// Generate 对每个基数 >= 2 的频繁项集 F，枚举所有非空真子集 A 作为前件，C = F \ A 为后件。
//
// support(A) 与 support(C) 从频繁项集表中查找：由反单调性它们必然存在，
// 查找失败说明输入不满足 Apriori 性质，返回 InconsistentStateError。
// 结果按 Compare 排序。
func (g *Generator) Generate(frequent *mining.Result) ([]Rule, error) {
	if err := core.ValidateThreshold("min_confidence", g.opts.MinConfidence); err != nil {
		return nil, err
	}
	if g.opts.Expr != "" {
		if _, err := dsl.Compile(g.opts.Expr); err != nil {
			return nil, err
		}
	}
	defer metrics.ObserveStage("rules", time.Now())

	rules := make([]Rule, 0)
	if frequent.Empty() {
		return rules, nil
	}

	for _, fi := range frequent.Itemsets {
		n := len(fi.Items)
		if n < 2 {
			continue
		}
		if n > maxItemsetLen {
			return nil, core.NewInconsistentState(core.ModuleRule, "rule: itemset of size %d exceeds %d", n, maxItemsetLen)
		}

		full := uint64(1)<<uint(n) - 1
		for mask := uint64(1); mask < full; mask++ {
			antecedent, consequent := split(fi.Items, mask)

			supA, ok := frequent.Support(antecedent)
			if !ok {
				return nil, core.NewInconsistentState(core.ModuleRule,
					"rule: antecedent {%s} of frequent itemset {%s} missing from frequent table", antecedent, fi.Items)
			}
			confidence := fi.Support / supA
			if confidence < g.opts.MinConfidence {
				continue
			}

			supC, ok := frequent.Support(consequent)
			if !ok {
				return nil, core.NewInconsistentState(core.ModuleRule,
					"rule: consequent {%s} of frequent itemset {%s} missing from frequent table", consequent, fi.Items)
			}
			r := Rule{
				Antecedent:        antecedent,
				Consequent:        consequent,
				AntecedentSupport: supA,
				ConsequentSupport: supC,
				Support:           fi.Support,
				Confidence:        confidence,
				Lift:              confidence / supC,
				Leverage:          fi.Support - supA*supC,
			}
			if g.opts.InformativeOnly && !r.Informative() {
				continue
			}
			if g.opts.Expr != "" {
				ok, err := dsl.EvaluateVars(g.opts.Expr, map[string]any{"rule": r.vars()})
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
			}
			rules = append(rules, r)
		}
	}

	Sort(rules)
	metrics.RulesGenerated.Add(float64(len(rules)))
	logging.Debug().
		Str("component", core.ModuleRule).
		Int("itemsets", frequent.Len()).
		Int("rules", len(rules)).
		Msg("rules generated")
	return rules, nil
}

// split 按位掩码把规范 Itemset 拆成 (A, F\A)，两者都保持规范顺序。
func split(items core.Itemset, mask uint64) (core.Itemset, core.Itemset) {
	a := make(core.Itemset, 0, len(items))
	c := make(core.Itemset, 0, len(items))
	for i, tag := range items {
		if mask&(1<<uint(i)) != 0 {
			a = append(a, tag)
		} else {
			c = append(c, tag)
		}
	}
	return a, c
}

// Select 用 CEL 表达式筛选规则，表达式中通过 rule 变量访问规则字段。
func Select(rules []Rule, expr string) ([]Rule, error) {
	if expr == "" {
		return rules, nil
	}
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		ok, err := dsl.EvaluateVars(expr, map[string]any{"rule": r.vars()})
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// FilterInformative 只保留 lift >= 1 的规则。
func FilterInformative(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Informative() {
			out = append(out, r)
		}
	}
	return out
}
