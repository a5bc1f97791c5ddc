package recommend

import (
	"cmp"
	"slices"

	"github.com/rushteam/tagmine/rule"
)

// Edge 是关联网络中的一条有向边：前件中的单个 hashtag → 规则后件（整体作为一个节点）。
type Edge struct {
	From   string  `json:"from" yaml:"from"`
	To     string  `json:"to" yaml:"to"`
	Weight float64 `json:"weight" yaml:"weight"` // 置信度
}

// Edges 把规则展开为网络边，供图渲染层使用。
// 相同 (From, To) 只保留置信度最高的一条；结果按 From、To 排序。
func Edges(rules []rule.Rule) []Edge {
	best := make(map[[2]string]float64)
	for _, r := range rules {
		to := r.Consequent.String()
		for _, from := range r.Antecedent {
			k := [2]string{from, to}
			if w, ok := best[k]; !ok || r.Confidence > w {
				best[k] = r.Confidence
			}
		}
	}

	out := make([]Edge, 0, len(best))
	for k, w := range best {
		out = append(out, Edge{From: k[0], To: k[1], Weight: w})
	}
	slices.SortFunc(out, func(a, b Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	return out
}
