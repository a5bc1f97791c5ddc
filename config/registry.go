// Package config 负责运行参数的加载校验（Params）以及 Pipeline 节点的注册与构建。
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/pipeline"
)

// StoreKey 是 LoadPipeline 注入到每个节点 config 中的 core.Store 所用的 key，
// 需要读取外部数据（如黑名单）的构建器从这里取 Store。
const StoreKey = "$store"

// 使用配置驱动的 Pipeline 时，需在入口处 import _ "github.com/rushteam/tagmine/config/builders"
// 以触发内置 Node（filter、rank.metric、rerank.dedup、rerank.topn）的 init 注册。

// NodeBuilder 与 pipeline.NodeBuilder 一致：根据 config 构建 Node。
type NodeBuilder = pipeline.NodeBuilder

var (
	defaultBuilders   = make(map[string]NodeBuilder)
	defaultBuildersMu sync.RWMutex
)

// Register 注册一种 Node 的构建逻辑，供 DefaultFactory 与配置驱动使用。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	defaultBuildersMu.Lock()
	defer defaultBuildersMu.Unlock()
	defaultBuilders[typeName] = builder
}

// SupportedTypes 返回当前已注册的 Node 类型列表（排序）。
func SupportedTypes() []string {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	types := make([]string, 0, len(defaultBuilders))
	for t := range defaultBuilders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DefaultFactory 返回包含所有已注册 Node 类型的 NodeFactory。
func DefaultFactory() *pipeline.NodeFactory {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	f := pipeline.NewNodeFactory()
	for typeName, builder := range defaultBuilders {
		f.Register(typeName, builder)
	}
	return f
}

// ValidatePipelineConfig 校验 pipeline 配置中所有 node 类型均已注册。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	for _, nc := range cfg.Pipeline.Nodes {
		if _, ok := defaultBuilders[nc.Type]; !ok {
			supported := make([]string, 0, len(defaultBuilders))
			for t := range defaultBuilders {
				supported = append(supported, t)
			}
			sort.Strings(supported)
			return fmt.Errorf("unsupported node type %q (supported: %v)", nc.Type, supported)
		}
	}
	return nil
}

// LoadPipeline 读取 YAML/JSON Pipeline 配置，校验节点类型后构建节点链。
// store 非 nil 时以 StoreKey 注入每个节点的 config。
func LoadPipeline(path string, store core.Store) ([]pipeline.Node, error) {
	var (
		cfg *pipeline.Config
		err error
	)
	if isJSON(path) {
		cfg, err = pipeline.LoadFromJSON(path)
	} else {
		cfg, err = pipeline.LoadFromYAML(path)
	}
	if err != nil {
		return nil, err
	}
	if err := ValidatePipelineConfig(cfg); err != nil {
		return nil, err
	}
	if store != nil {
		for i := range cfg.Pipeline.Nodes {
			if cfg.Pipeline.Nodes[i].Config == nil {
				cfg.Pipeline.Nodes[i].Config = make(map[string]any)
			}
			cfg.Pipeline.Nodes[i].Config[StoreKey] = store
		}
	}
	p, err := cfg.BuildPipeline(DefaultFactory())
	if err != nil {
		return nil, err
	}
	return p.Nodes, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
