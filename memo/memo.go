// Package memo 缓存挖掘与规则生成的结果。
//
// 缓存由调用方控制：key 是数据集与参数的指纹，相同输入得到相同 key；
// 值以 JSON 存入任意 core.Store（内存或 Redis）。缓存故障不会让一次运行失败。
package memo

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/mining"
	"github.com/rushteam/tagmine/pkg/logging"
	"github.com/rushteam/tagmine/pkg/metrics"
	"github.com/rushteam/tagmine/rule"
	"github.com/rushteam/tagmine/transaction"
)

const keyPrefix = "tagmine:result:"

// Params 是参与指纹计算的挖掘参数。
type Params struct {
	MinSupport      float64
	MinConfidence   float64
	InformativeOnly bool
	MaxLen          int
	Expr            string
}

// Fingerprint 计算数据集与参数的 64 位指纹，十六进制输出。
// 事务按归一化后的顺序参与哈希，因此同一份数据重复加载得到相同指纹。
func Fingerprint(set *transaction.Set, p Params) string {
	d := xxhash.New()
	var buf [8]byte
	writeFloat := func(f float64) {
		bits := math.Float64bits(f)
		for i := range buf {
			buf[i] = byte(bits >> (8 * i))
		}
		_, _ = d.Write(buf[:])
	}

	if set != nil {
		for _, tx := range set.Transactions() {
			for _, tag := range tx {
				_, _ = d.WriteString(tag)
				_, _ = d.Write([]byte{0})
			}
			_, _ = d.Write([]byte{'\n'})
		}
	}
	_, _ = d.Write([]byte{0xff})
	writeFloat(p.MinSupport)
	writeFloat(p.MinConfidence)
	_, _ = d.WriteString(strconv.FormatBool(p.InformativeOnly))
	_, _ = d.WriteString(strconv.Itoa(p.MaxLen))
	_, _ = d.WriteString(p.Expr)
	return strconv.FormatUint(d.Sum64(), 16)
}

// Entry 是一次运行的缓存内容。
type Entry struct {
	Frequent *mining.Result `json:"frequent"`
	Rules    []rule.Rule    `json:"rules"`
}

// Cache 是基于 core.Store 的结果缓存。
type Cache struct {
	Store core.Store

	// TTL 过期时间（秒），0 表示不过期
	TTL int
}

// New 创建缓存。
func New(store core.Store, ttl int) *Cache {
	return &Cache{Store: store, TTL: ttl}
}

// Get 读取缓存。未命中返回 (nil, false, nil)；Store 错误原样返回。
// 无法解码的条目会被删除并返回错误。
func (c *Cache) Get(ctx context.Context, fingerprint string) (*Entry, bool, error) {
	if c == nil || c.Store == nil {
		return nil, false, nil
	}
	data, err := c.Store.Get(ctx, keyPrefix+fingerprint)
	if err != nil {
		if core.IsStoreNotFound(err) {
			metrics.CacheRequests.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		metrics.CacheRequests.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("memo get: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		metrics.CacheRequests.WithLabelValues("error").Inc()
		// 损坏的条目删除后，下一次运行会重新挖掘并写回
		if derr := c.Store.Delete(ctx, keyPrefix+fingerprint); derr != nil {
			log := logging.With("memo")
			log.Warn().Err(derr).Str("fingerprint", fingerprint).Msg("drop corrupt entry failed")
		}
		return nil, false, fmt.Errorf("memo decode: %w", err)
	}
	if e.Frequent == nil {
		e.Frequent = mining.NewResult(0, 0, nil)
	} else {
		e.Frequent = mining.NewResult(e.Frequent.Total, e.Frequent.MinSupport, e.Frequent.Itemsets)
	}
	if e.Rules == nil {
		e.Rules = []rule.Rule{}
	}
	metrics.CacheRequests.WithLabelValues("hit").Inc()
	log := logging.With("memo")
	log.Debug().
		Str("fingerprint", fingerprint).
		Str("store", c.Store.Name()).
		Msg("cache hit")
	return &e, true, nil
}

// Put 写入缓存。
func (c *Cache) Put(ctx context.Context, fingerprint string, e *Entry) error {
	if c == nil || c.Store == nil || e == nil {
		return nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("memo encode: %w", err)
	}
	if err := c.Store.Set(ctx, keyPrefix+fingerprint, data, c.TTL); err != nil {
		return fmt.Errorf("memo put: %w", err)
	}
	return nil
}
