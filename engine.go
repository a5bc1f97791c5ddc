package tagmine

import (
	"context"
	"time"

	"github.com/rushteam/tagmine/config"
	_ "github.com/rushteam/tagmine/config/builders"
	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/memo"
	"github.com/rushteam/tagmine/mining"
	"github.com/rushteam/tagmine/pkg/logging"
	"github.com/rushteam/tagmine/recommend"
	"github.com/rushteam/tagmine/rule"
	"github.com/rushteam/tagmine/transaction"
)

// DefaultPreviewRows 是结果中事务预览的默认行数。
const DefaultPreviewRows = 10

// Result 是一次运行的全部输出。
type Result struct {
	Preview transaction.Preview `json:"preview" yaml:"preview"`

	// Frequent 是全部频繁项集
	Frequent *mining.Result `json:"frequent" yaml:"frequent"`

	// Containing 是包含查询全部 hashtag 的频繁项集，按支持度降序，最多 top_k 个
	Containing []mining.FrequentItemset `json:"containing" yaml:"containing"`

	Rules []rule.Rule `json:"rules" yaml:"rules"`

	// MatchedRules 是前件包含查询的规则
	MatchedRules []rule.Rule `json:"matched_rules" yaml:"matched_rules"`

	Recommendations []recommend.Recommendation `json:"recommendations" yaml:"recommendations"`
	Edges           []recommend.Edge           `json:"edges" yaml:"edges"`

	// Cached 表示挖掘结果来自缓存
	Cached bool `json:"cached" yaml:"cached"`
}

// Engine 串联 transaction → mining → rule → recommend。Engine 可并发复用。
type Engine struct {
	cache       *memo.Cache
	store       core.Store
	nodes       []Node
	previewRows int
}

// Option 配置 Engine。
type Option func(*Engine)

// WithCache 启用挖掘结果缓存。
func WithCache(c *memo.Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithStore 设置 Pipeline 配置中节点（如带 key 的黑名单）读取的 Store。
// 未设置时使用缓存的 Store。
func WithStore(s core.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithNodes 替换推荐阶段召回之后的节点链。
func WithNodes(nodes ...Node) Option {
	return func(e *Engine) { e.nodes = nodes }
}

// WithPreviewRows 设置预览行数（<= 0 表示全部）。
func WithPreviewRows(n int) Option {
	return func(e *Engine) { e.previewRows = n }
}

// NewEngine 创建 Engine。
func NewEngine(opts ...Option) *Engine {
	e := &Engine{previewRows: DefaultPreviewRows}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) pipelineStore() core.Store {
	if e.store != nil {
		return e.store
	}
	if e.cache != nil {
		return e.cache.Store
	}
	return nil
}

// Run 执行一次完整的挖掘与推荐。
//
// 参数在任何计算之前校验：阈值越界返回 InvalidThresholdError；
// 归一化后没有非空事务返回 EmptyDatasetError。没有频繁项集、规则或推荐都不是错误。
func (e *Engine) Run(ctx context.Context, raw [][]string, p config.Params) (*Result, error) {
	start := time.Now()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	set, err := transaction.New(raw)
	if err != nil {
		return nil, err
	}

	nodes := e.nodes
	if p.Pipeline != "" {
		if nodes, err = config.LoadPipeline(p.Pipeline, e.pipelineStore()); err != nil {
			return nil, err
		}
	}

	frequent, rules, cached, err := e.mine(ctx, set, p)
	if err != nil {
		return nil, err
	}

	recs, err := recommend.New(nodes...).Recommend(ctx, rules, p.Query, p.TopK)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Preview:         set.Preview(e.previewRows),
		Frequent:        frequent,
		Containing:      mining.Containing(frequent, core.NewItemset(p.Query...), p.TopK),
		Rules:           rules,
		MatchedRules:    recommend.MatchRules(rules, p.Query, 0),
		Recommendations: recs,
		Edges:           recommend.Edges(rules),
		Cached:          cached,
	}

	logging.Info().
		Int("transactions", set.Len()).
		Int("hashtags", set.NumItems()).
		Int("itemsets", frequent.Len()).
		Int("rules", len(rules)).
		Int("recommendations", len(recs)).
		Bool("cached", cached).
		Dur("elapsed", time.Since(start)).
		Msg("tagmine run")
	return res, nil
}

// mine 返回频繁项集与规则，优先读缓存。缓存读写失败只记日志。
func (e *Engine) mine(ctx context.Context, set *transaction.Set, p config.Params) (*mining.Result, []rule.Rule, bool, error) {
	var fp string
	if e.cache != nil {
		fp = memo.Fingerprint(set, memo.Params{
			MinSupport:      p.MinSupport,
			MinConfidence:   p.MinConfidence,
			InformativeOnly: p.LiftFilter,
			MaxLen:          p.MaxLen,
			Expr:            p.Expr,
		})
		entry, ok, err := e.cache.Get(ctx, fp)
		if err != nil {
			logging.Warn().Err(err).Str("fingerprint", fp).Msg("cache lookup failed")
		}
		if ok {
			return entry.Frequent, entry.Rules, true, nil
		}
	}

	miner := mining.NewMiner(mining.Options{
		MinSupport: p.MinSupport,
		MaxLen:     p.MaxLen,
		Workers:    p.Workers,
	})
	frequent, err := miner.Mine(ctx, set)
	if err != nil {
		return nil, nil, false, err
	}
	rules, err := rule.NewGenerator(rule.Options{
		MinConfidence:   p.MinConfidence,
		InformativeOnly: p.LiftFilter,
		Expr:            p.Expr,
	}).Generate(frequent)
	if err != nil {
		return nil, nil, false, err
	}

	if e.cache != nil {
		if err := e.cache.Put(ctx, fp, &memo.Entry{Frequent: frequent, Rules: rules}); err != nil {
			logging.Warn().Err(err).Str("fingerprint", fp).Msg("cache store failed")
		}
	}
	return frequent, rules, false, nil
}
