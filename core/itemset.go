package core

import (
	"slices"
	"strings"
)

// keySep 用于拼接 Itemset 的内部 key，不会出现在归一化后的 hashtag 中以外的位置。
const keySep = "\x00"

// Normalize 把原始 token 归一化为 Hashtag：去首尾空白并转小写。
func Normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Itemset 是 hashtag 的集合，始终保持规范形态：归一化、去重、按字典序升序。
// 规范形态保证了相同集合拥有相同的 Key，并且可以用归并方式做子集判断。
type Itemset []string

// NewItemset 从原始 token 构建规范 Itemset；空 token 会被丢弃。
func NewItemset(tags ...string) Itemset {
	out := make(Itemset, 0, len(tags))
	for _, t := range tags {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Key 返回用于 map 查找的唯一 key。
func (s Itemset) Key() string {
	return strings.Join(s, keySep)
}

// String 返回展示用的形式，例如 "a, b"。
func (s Itemset) String() string {
	return strings.Join(s, ", ")
}

// Len 返回基数。
func (s Itemset) Len() int { return len(s) }

// Contains 判断是否包含某个（已归一化的）hashtag。
func (s Itemset) Contains(tag string) bool {
	_, ok := slices.BinarySearch(s, tag)
	return ok
}

// IsSubsetOf 判断 s ⊆ other。空集是任何集合的子集。
func (s Itemset) IsSubsetOf(other Itemset) bool {
	if len(s) > len(other) {
		return false
	}
	j := 0
	for _, x := range s {
		for j < len(other) && other[j] < x {
			j++
		}
		if j == len(other) || other[j] != x {
			return false
		}
		j++
	}
	return true
}

// Equal 判断两个规范 Itemset 是否相同。
func (s Itemset) Equal(other Itemset) bool {
	return slices.Equal(s, other)
}

// Minus 返回 s \ other。
func (s Itemset) Minus(other Itemset) Itemset {
	out := make(Itemset, 0, len(s))
	for _, x := range s {
		if !other.Contains(x) {
			out = append(out, x)
		}
	}
	return out
}

// Union 返回 s ∪ other。
func (s Itemset) Union(other Itemset) Itemset {
	out := make(Itemset, 0, len(s)+len(other))
	out = append(out, s...)
	out = append(out, other...)
	slices.Sort(out)
	return slices.Compact(out)
}

// Disjoint 判断两个集合是否不相交。
func (s Itemset) Disjoint(other Itemset) bool {
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] == other[j]:
			return false
		case s[i] < other[j]:
			i++
		default:
			j++
		}
	}
	return true
}

// CompareItemsets 是 Itemset 的规范排序：先按基数，再按字典序逐项比较。
func CompareItemsets(a, b Itemset) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return slices.Compare(a, b)
}
