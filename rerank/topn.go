package rerank

import (
	"context"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序、去重后截取前 N 个候选。
//
// N <= 0 时使用 RecommendContext.TopK；两者都 <= 0 时不截断。
//
// 示例：
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.RuleRecall{Rules: rules},
//	        &rank.MetricNode{},
//	        &rerank.Dedup{},
//	        &rerank.TopNNode{N: 10},
//	    },
//	}
type TopNNode struct {
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.TopK
	}
	if limit <= 0 || len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
