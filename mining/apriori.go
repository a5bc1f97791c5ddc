// Package mining 实现 Apriori 逐层频繁项集挖掘。
//
// 算法流程：
//  1. 计算所有单项的支持度，保留 >= MinSupport 的作为 L1（L1 为空时直接返回空结果）
//  2. k = 2, 3, ...：对 L(k-1) 中前 k-2 项相同的项集两两 join 生成候选，
//     再剪掉任何 (k-1) 子集不在 L(k-1) 中的候选（支持度的反单调性）
//  3. 并发扫描事务集合统计候选支持度，保留 >= MinSupport 的作为 Lk
//  4. Lk 为空、k 超过不同 hashtag 数或超过 MaxLen 时终止
//
// 层与层之间是协作式取消点：每一层开始前检查 ctx。
package mining

import (
	"context"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/pkg/logging"
	"github.com/rushteam/tagmine/pkg/metrics"
	"github.com/rushteam/tagmine/transaction"
)

// defaultShardSize 是每个计数任务负责的候选数量。
const defaultShardSize = 64

// Options 是挖掘参数。
type Options struct {
	// MinSupport 最小支持度，必须在 (0,1]
	MinSupport float64

	// MaxLen 项集最大基数（0 表示不限制）
	MaxLen int

	// Workers 支持度计数的最大并发数（0 表示 GOMAXPROCS）
	Workers int

	// ShardSize 每个计数任务处理的候选数（0 表示默认值）
	ShardSize int
}

// Miner 是 Apriori 频繁项集挖掘器。Miner 本身无状态，可并发复用。
type Miner struct {
	opts Options
}

// NewMiner 创建挖掘器。
func NewMiner(opts Options) *Miner {
	if opts.Workers <= 0 {
		opts.Workers = (&core.DefaultMiningConfig{}).DefaultWorkers()
	}
	if opts.ShardSize <= 0 {
		opts.ShardSize = defaultShardSize
	}
	return &Miner{opts: opts}
}

// Mine 是便捷入口，使用默认并发参数。
func Mine(ctx context.Context, set *transaction.Set, minSupport float64) (*Result, error) {
	return NewMiner(Options{MinSupport: minSupport}).Mine(ctx, set)
}

// candidate 是以 hashtag 下标表示的项集，下标升序。
// Items 本身按字典序排列，所以下标序与字典序一致。
type candidate []int

// Mine 执行逐层挖掘，返回所有频繁项集（规范顺序）。
// 阈值非法时在任何挖掘工作之前返回 InvalidThresholdError。
func (m *Miner) Mine(ctx context.Context, set *transaction.Set) (*Result, error) {
	if err := core.ValidateThreshold("min_support", m.opts.MinSupport); err != nil {
		return nil, err
	}
	if set == nil || set.Len() == 0 {
		return nil, core.ErrEmptyDataset
	}
	defer metrics.ObserveStage("mine", time.Now())

	log := logging.With(core.ModuleMining)
	total := set.Len()
	var out []FrequentItemset

	// L1
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	level := make([]candidate, 0, set.NumItems())
	for item := 0; item < set.NumItems(); item++ {
		count := set.Count([]int{item})
		if m.frequent(count, total) {
			level = append(level, candidate{item})
			out = append(out, m.toFrequent(set, candidate{item}, count, total))
		}
	}
	metrics.RecordLevel(1, set.NumItems(), 0, len(level))
	log.Debug().Int("k", 1).Int("candidates", set.NumItems()).Int("frequent", len(level)).Msg("level mined")

	for k := 2; len(level) > 0 && k <= set.NumItems(); k++ {
		if m.opts.MaxLen > 0 && k > m.opts.MaxLen {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		joined := join(level)
		cands := prune(joined, level)
		counts, err := m.count(ctx, set, cands)
		if err != nil {
			return nil, err
		}

		next := make([]candidate, 0, len(cands))
		for i, c := range cands {
			if m.frequent(counts[i], total) {
				next = append(next, c)
				out = append(out, m.toFrequent(set, c, counts[i], total))
			}
		}

		pruned := len(joined) - len(cands)
		metrics.RecordLevel(k, len(joined), pruned, len(next))
		log.Debug().
			Int("k", k).
			Int("candidates", len(joined)).
			Int("pruned", pruned).
			Int("frequent", len(next)).
			Msg("level mined")
		level = next
	}

	return NewResult(total, m.opts.MinSupport, out), nil
}

func (m *Miner) frequent(count, total int) bool {
	return count > 0 && float64(count)/float64(total) >= m.opts.MinSupport
}

func (m *Miner) toFrequent(set *transaction.Set, c candidate, count, total int) FrequentItemset {
	items := make(core.Itemset, len(c))
	for i, idx := range c {
		items[i] = set.Item(idx)
	}
	return FrequentItemset{
		Items:   items,
		Count:   count,
		Support: float64(count) / float64(total),
	}
}

// join 是 Apriori-gen 的连接步：level 按字典序排列，前 k-2 项相同的项集连续出现，
// 两两连接得到 k 项候选。每个候选只会生成一次。
func join(level []candidate) []candidate {
	var out []candidate
	for i := 0; i < len(level); i++ {
		a := level[i]
		prefix := a[:len(a)-1]
		for j := i + 1; j < len(level); j++ {
			b := level[j]
			if !samePrefix(prefix, b) {
				break
			}
			c := make(candidate, len(a)+1)
			copy(c, a)
			c[len(a)] = b[len(b)-1]
			out = append(out, c)
		}
	}
	return out
}

func samePrefix(prefix, b candidate) bool {
	for i, x := range prefix {
		if b[i] != x {
			return false
		}
	}
	return true
}

// prune 是 Apriori-gen 的剪枝步：候选的任何 (k-1) 子集不在 level 中即被剔除。
// 去掉最后两项之一得到的子集就是 join 的两个父项集，必然频繁，无需检查。
func prune(cands, level []candidate) []candidate {
	if len(cands) == 0 {
		return cands
	}
	frequent := make(map[string]struct{}, len(level))
	for _, c := range level {
		frequent[key(c)] = struct{}{}
	}

	out := cands[:0]
	sub := make(candidate, 0, len(cands[0])-1)
	for _, c := range cands {
		keep := true
		for drop := 0; drop < len(c)-2; drop++ {
			sub = sub[:0]
			sub = append(sub, c[:drop]...)
			sub = append(sub, c[drop+1:]...)
			if _, ok := frequent[key(sub)]; !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

func key(c candidate) string {
	var b strings.Builder
	for i, x := range c {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
	return b.String()
}

// count 并发统计候选支持度。
// 候选按 ShardSize 切片，每个任务只写自己负责的 counts 下标区间，无需加锁；
// 计数与调度顺序无关，结果与串行执行一致。
func (m *Miner) count(ctx context.Context, set *transaction.Set, cands []candidate) ([]int, error) {
	counts := make([]int, len(cands))
	if len(cands) == 0 {
		return counts, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(m.opts.Workers)

	for lo := 0; lo < len(cands); lo += m.opts.ShardSize {
		lo := lo
		hi := min(lo+m.opts.ShardSize, len(cands))
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				counts[i] = set.Count(cands[i])
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}
