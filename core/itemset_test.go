package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewItemset(t *testing.T) {
	assert.Equal(t, Itemset{"#a", "#b"}, NewItemset(" #B", "#a", "#A", "", "  "))
	assert.Empty(t, NewItemset())
}

func TestItemset_SetOps(t *testing.T) {
	ab := NewItemset("a", "b")
	abc := NewItemset("a", "b", "c")

	assert.True(t, ab.IsSubsetOf(abc))
	assert.False(t, abc.IsSubsetOf(ab))
	assert.True(t, Itemset{}.IsSubsetOf(ab))
	assert.False(t, NewItemset("a", "d").IsSubsetOf(abc))

	assert.True(t, abc.Contains("c"))
	assert.False(t, abc.Contains("C"))

	assert.Equal(t, Itemset{"c"}, abc.Minus(ab))
	assert.Equal(t, abc, ab.Union(NewItemset("c", "a")))
	assert.True(t, ab.Disjoint(NewItemset("c")))
	assert.False(t, ab.Disjoint(abc))
	assert.True(t, ab.Equal(NewItemset("b", "a")))
	assert.NotEqual(t, NewItemset("a", "bc").Key(), NewItemset("ab", "c").Key())
	assert.Equal(t, "a, b", ab.String())
}

func TestCompareItemsets(t *testing.T) {
	assert.Negative(t, CompareItemsets(Itemset{"z"}, Itemset{"a", "b"}))
	assert.Negative(t, CompareItemsets(Itemset{"a", "b"}, Itemset{"a", "c"}))
	assert.Zero(t, CompareItemsets(Itemset{"a"}, Itemset{"a"}))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 66.67, Percent(2.0/3.0, 2))
	assert.Equal(t, 67.0, Percent(2.0/3.0, 0))
	assert.Equal(t, 1.235, Round(1.2346, 3))
	assert.Equal(t, 1.23456, Round(1.23456, -1))
}

func TestDomainErrors(t *testing.T) {
	err := fmt.Errorf("run: %w", NewInvalidThreshold("min_support", 1.5))
	assert.True(t, IsInvalidThreshold(err))
	assert.False(t, IsEmptyDataset(err))
	assert.ErrorIs(t, fmt.Errorf("wrap: %w", ErrEmptyDataset), ErrEmptyDataset)

	for _, v := range []float64{0.1, 1} {
		assert.NoError(t, ValidateThreshold("x", v))
	}
	for _, v := range []float64{0, -0.1, 1.0001} {
		assert.Error(t, ValidateThreshold("x", v))
	}

	de := GetDomainError(NewInconsistentState(ModuleRule, "missing %s", "a"))
	if assert.NotNil(t, de) {
		assert.Equal(t, ModuleRule, de.Module)
		assert.Equal(t, "missing a", de.Message)
	}
	assert.Nil(t, GetDomainError(nil))
}
