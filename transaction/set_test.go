package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/tagmine/core"
)

func TestNew_Normalizes(t *testing.T) {
	set, err := New([][]string{
		{" #AI ", "#ml", "#ai", ""},
		{"   ", ""},
		{"#Food"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"#ai", "#food", "#ml"}, set.Items())
	assert.Equal(t, core.Itemset{"#ai", "#ml"}, set.Transaction(0))
	assert.Equal(t, core.Itemset{"#food"}, set.Transaction(1))
}

func TestNew_EmptyDataset(t *testing.T) {
	tests := []struct {
		name string
		raw  [][]string
	}{
		{name: "nil input", raw: nil},
		{name: "no transactions", raw: [][]string{}},
		{name: "only blank tokens", raw: [][]string{{" ", ""}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := New(tt.raw)
			assert.Nil(t, set)
			require.Error(t, err)
			assert.True(t, core.IsEmptyDataset(err))
		})
	}
}

func TestSet_ContainsAndCount(t *testing.T) {
	set, err := New([][]string{{"a", "b", "c"}, {"a", "b"}, {"a", "c"}, {"b", "c"}})
	require.NoError(t, err)

	assert.True(t, set.Contains(0, "A"))
	assert.False(t, set.Contains(3, "a"))
	assert.False(t, set.Contains(0, "missing"))
	assert.False(t, set.ContainsIndex(10, 0))

	a, _ := set.Index("a")
	b, _ := set.Index("b")
	c, _ := set.Index("c")
	assert.Equal(t, 4, set.Count(nil))
	assert.Equal(t, 3, set.Count([]int{a}))
	assert.Equal(t, 2, set.Count([]int{a, b}))
	assert.Equal(t, 1, set.Count([]int{a, b, c}))
}

func TestSet_CountAcrossWords(t *testing.T) {
	raw := make([][]string, 0, 130)
	for i := 0; i < 130; i++ {
		if i%2 == 0 {
			raw = append(raw, []string{"even", "all"})
		} else {
			raw = append(raw, []string{"all"})
		}
	}
	set, err := New(raw)
	require.NoError(t, err)

	even, _ := set.Index("even")
	all, _ := set.Index("all")
	assert.Equal(t, 130, set.Count([]int{all}))
	assert.Equal(t, 65, set.Count([]int{even, all}))
}

func TestSet_Preview(t *testing.T) {
	set, err := New([][]string{{"a", "b"}, {"c"}, {"a"}})
	require.NoError(t, err)

	p := set.Preview(2)
	assert.Equal(t, []string{"a", "b", "c"}, p.Items)
	require.Len(t, p.Transactions, 2)
	assert.Equal(t, [][]bool{{true, true, false}, {false, false, true}}, p.Rows)

	assert.Len(t, set.Preview(0).Rows, 3)
	assert.Len(t, set.Preview(99).Rows, 3)
}
