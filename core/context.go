package core

import "github.com/rushteam/tagmine/pkg/utils"

// RecommendContext 承载一次查询的上下文，贯穿整个 Pipeline 透传。
// 它只在单次查询的生命周期内存在，不做跨查询缓存。
type RecommendContext struct {
	// Query 是用户输入的种子 hashtag（规范形态）
	Query Itemset

	// TopK 是最终返回的推荐数量上限（<= 0 表示不截断）
	TopK int

	// Labels 是查询级标签，可驱动 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级参数，可在 CEL 表达式中通过 rctx.params 访问
	Params map[string]any
}

// NewRecommendContext 由原始 token 构建查询上下文。
func NewRecommendContext(query []string, topK int) *RecommendContext {
	return &RecommendContext{
		Query:  NewItemset(query...),
		TopK:   topK,
		Labels: make(map[string]utils.Label),
		Params: make(map[string]any),
	}
}

// PutLabel 写入查询级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取查询级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
