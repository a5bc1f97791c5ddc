package core

import "runtime"

// MiningConfig 提供挖掘/推荐相关的默认值。
type MiningConfig interface {
	DefaultMinSupport() float64
	DefaultMinConfidence() float64
	DefaultTopK() int
	DefaultWorkers() int
}

// DefaultMiningConfig 是默认实现，数值与交互式使用的常见初值一致。
type DefaultMiningConfig struct{}

func (c *DefaultMiningConfig) DefaultMinSupport() float64 {
	return 0.1
}

func (c *DefaultMiningConfig) DefaultMinConfidence() float64 {
	return 0.5
}

func (c *DefaultMiningConfig) DefaultTopK() int {
	return 10
}

// DefaultWorkers 返回支持度计数的默认并发数。
func (c *DefaultMiningConfig) DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}
