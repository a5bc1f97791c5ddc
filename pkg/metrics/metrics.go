// Package metrics 提供挖掘各阶段的 Prometheus 指标。
// 指标注册到默认 Registry，由调用方决定是否通过 promhttp 暴露。
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MiningCandidates 每一层生成（join 之后、剪枝之前）的候选数
	MiningCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagmine_mining_candidates_total",
			Help: "Candidate itemsets generated by the join step, per level",
		},
		[]string{"k"},
	)

	// MiningPruned 因存在非频繁 (k-1) 子集而被剪掉的候选数
	MiningPruned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagmine_mining_pruned_total",
			Help: "Candidate itemsets removed by the Apriori subset check, per level",
		},
		[]string{"k"},
	)

	// MiningFrequent 每一层保留的频繁项集数
	MiningFrequent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagmine_mining_frequent_total",
			Help: "Frequent itemsets retained, per level",
		},
		[]string{"k"},
	)

	// StageDuration 各阶段耗时
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tagmine_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	// RulesGenerated 保留下来的规则数
	RulesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tagmine_rules_generated_total",
			Help: "Association rules retained after confidence and lift filtering",
		},
	)

	// Recommendations 返回的推荐数
	Recommendations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tagmine_recommendations_total",
			Help: "Hashtag recommendations returned",
		},
	)

	// CacheRequests 记忆化缓存命中情况
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagmine_cache_requests_total",
			Help: "Memoized result lookups by outcome",
		},
		[]string{"result"}, // hit, miss, error
	)
)

// RecordLevel 记录一层挖掘的候选/剪枝/频繁数量。
func RecordLevel(k, candidates, pruned, frequent int) {
	level := strconv.Itoa(k)
	MiningCandidates.WithLabelValues(level).Add(float64(candidates))
	MiningPruned.WithLabelValues(level).Add(float64(pruned))
	MiningFrequent.WithLabelValues(level).Add(float64(frequent))
}

// ObserveStage 记录从 start 到现在的阶段耗时。
//
//	defer metrics.ObserveStage("mine", time.Now())
func ObserveStage(stage string, start time.Time) {
	StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
