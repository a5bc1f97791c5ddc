package mining

import (
	"cmp"
	"slices"

	"github.com/rushteam/tagmine/core"
)

// FrequentItemset 是支持度达到阈值的项集。
type FrequentItemset struct {
	Items   core.Itemset `json:"items" yaml:"items"`
	Count   int          `json:"count" yaml:"count"`     // 包含该项集的事务数
	Support float64      `json:"support" yaml:"support"` // Count / Total
}

// Result 是一次挖掘的完整输出，同时是规则生成阶段的支持度查找表。
// Itemsets 按规范顺序排列：先基数、再字典序。
type Result struct {
	Itemsets   []FrequentItemset `json:"itemsets" yaml:"itemsets"`
	Total      int               `json:"total" yaml:"total"`
	MinSupport float64           `json:"min_support" yaml:"min_support"`

	index map[string]int
}

// NewResult 构建 Result：按规范顺序排序并建立查找索引。
// 用于挖掘输出，也用于从缓存中恢复结果。
func NewResult(total int, minSupport float64, itemsets []FrequentItemset) *Result {
	sorted := slices.Clone(itemsets)
	slices.SortStableFunc(sorted, func(a, b FrequentItemset) int {
		return core.CompareItemsets(a.Items, b.Items)
	})
	r := &Result{
		Itemsets:   sorted,
		Total:      total,
		MinSupport: minSupport,
	}
	r.reindex()
	return r
}

func (r *Result) reindex() {
	r.index = make(map[string]int, len(r.Itemsets))
	for i, fi := range r.Itemsets {
		r.index[fi.Items.Key()] = i
	}
}

// Len 返回频繁项集数量。
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Itemsets)
}

// Empty 判断是否没有任何频繁项集（合法结果，不是错误）。
func (r *Result) Empty() bool { return r.Len() == 0 }

// Lookup 查找项集的频繁记录。
func (r *Result) Lookup(items core.Itemset) (FrequentItemset, bool) {
	if r == nil {
		return FrequentItemset{}, false
	}
	if r.index == nil {
		// 未经 NewResult 构建（例如直接反序列化）时退化为线性查找
		for _, fi := range r.Itemsets {
			if fi.Items.Equal(items) {
				return fi, true
			}
		}
		return FrequentItemset{}, false
	}
	i, ok := r.index[items.Key()]
	if !ok {
		return FrequentItemset{}, false
	}
	return r.Itemsets[i], true
}

// Support 返回项集的支持度。
func (r *Result) Support(items core.Itemset) (float64, bool) {
	fi, ok := r.Lookup(items)
	return fi.Support, ok
}

// MaxLen 返回最大频繁项集的基数。
func (r *Result) MaxLen() int {
	if r.Empty() {
		return 0
	}
	return len(r.Itemsets[len(r.Itemsets)-1].Items)
}

// Level 返回基数为 k 的频繁项集（规范顺序）。
func (r *Result) Level(k int) []FrequentItemset {
	if r == nil {
		return nil
	}
	var out []FrequentItemset
	for _, fi := range r.Itemsets {
		if len(fi.Items) == k {
			out = append(out, fi)
		}
	}
	return out
}

// SortBySupport 按支持度降序排序，支持度相同时按规范顺序。
func SortBySupport(itemsets []FrequentItemset) {
	slices.SortStableFunc(itemsets, func(a, b FrequentItemset) int {
		if c := cmp.Compare(b.Support, a.Support); c != 0 {
			return c
		}
		return core.CompareItemsets(a.Items, b.Items)
	})
}

// Containing 返回包含 query 中全部 hashtag 的频繁项集，按支持度降序，最多 topK 个（<= 0 不截断）。
func Containing(r *Result, query core.Itemset, topK int) []FrequentItemset {
	if r == nil {
		return nil
	}
	out := make([]FrequentItemset, 0)
	for _, fi := range r.Itemsets {
		if query.IsSubsetOf(fi.Items) {
			out = append(out, fi)
		}
	}
	SortBySupport(out)
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}
