package core

import "github.com/rushteam/tagmine/pkg/utils"

// 候选 hashtag 携带的指标 key。
const (
	FeatureConfidence = "confidence"
	FeatureLift       = "lift"
	FeatureSupport    = "support"
	FeatureLeverage   = "leverage"
)

// Item 是推荐链路中的统一承载结构：一个候选 hashtag 及其产生它的规则指标、标签。
// Labels 用于解释（例如产生该候选的规则）；Features 用于排序决策。
type Item struct {
	ID       string // 归一化后的 hashtag
	Score    float64
	Features map[string]float64
	Meta     map[string]any
	Labels   map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:       id,
		Score:    0,
		Features: make(map[string]float64),
		Meta:     make(map[string]any),
		Labels:   make(map[string]utils.Label),
	}
}

// Feature 读取指标，不存在时返回 0。
func (it *Item) Feature(key string) float64 {
	if it == nil || it.Features == nil {
		return 0
	}
	return it.Features[key]
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
