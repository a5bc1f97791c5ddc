// Package tagmine 从帖子的 hashtag 集合中挖掘共现模式，并据此推荐 hashtag。
//
// 设计要点：
//   - 显式算法：Apriori 逐层搜索 + 子集枚举生成规则，不依赖外部挖掘库
//   - Pipeline-first：推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank），可由 YAML 配置
//   - 核心纯函数：缓存由调用方通过 memo.Cache 显式控制
//
// 典型用法：
//
//	eng := tagmine.NewEngine()
//	res, err := eng.Run(ctx, posts, config.DefaultParams())
package tagmine

import "github.com/rushteam/tagmine/pipeline"

// 轻量 facade：便于用户直接 import "tagmine" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)
