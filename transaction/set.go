// Package transaction 提供挖掘的基础数据结构：归一化后的事务集合及其布尔关联矩阵。
package transaction

import (
	"math/bits"
	"slices"

	"github.com/rushteam/tagmine/core"
)

// Set 是不可变的事务集合。
//
// 除了按输入顺序保存的事务外，还按 hashtag 维护一列位图（第 i 位表示第 i 个事务包含该 hashtag），
// 即"事务 × hashtag"的布尔关联矩阵按列存储。候选集的支持度计数就是若干列按位与后的 popcount。
type Set struct {
	txs       []core.Itemset
	items     []string
	index     map[string]int
	incidence [][]uint64
	words     int
}

// New 从原始 hashtag 集合构建 Set。
// 每个集合会被归一化（去空白、转小写、丢弃空 token、去重），归一化后为空的集合被丢弃。
// 若没有任何非空事务，返回 core.ErrEmptyDataset。
func New(raw [][]string) (*Set, error) {
	txs := make([]core.Itemset, 0, len(raw))
	for _, r := range raw {
		tx := core.NewItemset(r...)
		if len(tx) == 0 {
			continue
		}
		txs = append(txs, tx)
	}
	if len(txs) == 0 {
		return nil, core.ErrEmptyDataset
	}

	seen := make(map[string]struct{})
	for _, tx := range txs {
		for _, tag := range tx {
			seen[tag] = struct{}{}
		}
	}
	items := make([]string, 0, len(seen))
	for tag := range seen {
		items = append(items, tag)
	}
	slices.Sort(items)

	index := make(map[string]int, len(items))
	for i, tag := range items {
		index[tag] = i
	}

	words := (len(txs) + 63) / 64
	incidence := make([][]uint64, len(items))
	for i := range incidence {
		incidence[i] = make([]uint64, words)
	}
	for t, tx := range txs {
		for _, tag := range tx {
			col := incidence[index[tag]]
			col[t/64] |= 1 << (uint(t) % 64)
		}
	}

	return &Set{
		txs:       txs,
		items:     items,
		index:     index,
		incidence: incidence,
		words:     words,
	}, nil
}

// Len 返回事务总数。
func (s *Set) Len() int { return len(s.txs) }

// Items 返回所有不同的 hashtag（升序，返回副本）。
func (s *Set) Items() []string { return slices.Clone(s.items) }

// NumItems 返回不同 hashtag 的数量。
func (s *Set) NumItems() int { return len(s.items) }

// Item 返回第 i 个 hashtag。
func (s *Set) Item(i int) string { return s.items[i] }

// Index 返回 hashtag 在 Items 中的下标。
func (s *Set) Index(tag string) (int, bool) {
	i, ok := s.index[core.Normalize(tag)]
	return i, ok
}

// Transaction 返回第 i 个事务。
func (s *Set) Transaction(i int) core.Itemset { return s.txs[i] }

// Transactions 返回所有事务（按输入顺序）。返回的切片不可修改。
func (s *Set) Transactions() []core.Itemset { return s.txs }

// Contains 判断第 i 个事务是否包含 tag。
func (s *Set) Contains(i int, tag string) bool {
	item, ok := s.Index(tag)
	if !ok {
		return false
	}
	return s.ContainsIndex(i, item)
}

// ContainsIndex 判断第 i 个事务是否包含下标为 item 的 hashtag。
func (s *Set) ContainsIndex(i, item int) bool {
	if i < 0 || i >= len(s.txs) || item < 0 || item >= len(s.items) {
		return false
	}
	return s.incidence[item][i/64]&(1<<(uint(i)%64)) != 0
}

// Count 返回同时包含 items（hashtag 下标）中所有元素的事务数。
// items 为空时返回事务总数。
func (s *Set) Count(items []int) int {
	if len(items) == 0 {
		return len(s.txs)
	}
	n := 0
	for w := 0; w < s.words; w++ {
		word := ^uint64(0)
		for _, item := range items {
			word &= s.incidence[item][w]
			if word == 0 {
				break
			}
		}
		n += bits.OnesCount64(word)
	}
	return n
}

// Preview 是数据预览：前 n 个事务及其在全部 hashtag 上的布尔行。
type Preview struct {
	Items        []string       `json:"items" yaml:"items"`
	Transactions []core.Itemset `json:"transactions" yaml:"transactions"`
	Rows         [][]bool       `json:"rows" yaml:"rows"`
}

// Preview 返回前 n 个事务的预览（n <= 0 或超过总数时返回全部）。
func (s *Set) Preview(n int) Preview {
	if n <= 0 || n > len(s.txs) {
		n = len(s.txs)
	}
	p := Preview{
		Items:        s.Items(),
		Transactions: slices.Clone(s.txs[:n]),
		Rows:         make([][]bool, n),
	}
	for t := 0; t < n; t++ {
		row := make([]bool, len(s.items))
		for item := range s.items {
			row[item] = s.ContainsIndex(t, item)
		}
		p.Rows[t] = row
	}
	return p
}
