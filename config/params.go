package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/tagmine/core"
)

// EnvPrefix 是环境变量前缀：TAGMINE_MIN_SUPPORT -> min_support。
const EnvPrefix = "TAGMINE_"

// Params 是一次挖掘/推荐运行的参数。
type Params struct {
	MinSupport    float64  `koanf:"min_support" yaml:"min_support" json:"min_support"`
	MinConfidence float64  `koanf:"min_confidence" yaml:"min_confidence" json:"min_confidence"`
	LiftFilter    bool     `koanf:"lift_filter" yaml:"lift_filter" json:"lift_filter"` // 只保留 lift >= 1 的规则
	TopK          int      `koanf:"top_k" yaml:"top_k" json:"top_k" validate:"gte=1"`
	Query         []string `koanf:"query" yaml:"query" json:"query"`
	MaxLen        int      `koanf:"max_len" yaml:"max_len" json:"max_len" validate:"gte=0"` // 0 表示不限
	Workers       int      `koanf:"workers" yaml:"workers" json:"workers" validate:"gte=0"` // 0 表示 GOMAXPROCS
	Expr          string   `koanf:"expr" yaml:"expr" json:"expr"`                           // CEL 规则过滤表达式

	// Pipeline 是推荐 Pipeline 配置文件（YAML/JSON），为空时使用内置节点链
	Pipeline string `koanf:"pipeline" yaml:"pipeline" json:"pipeline"`
}

// DefaultParams 返回默认参数。
func DefaultParams() Params {
	d := &core.DefaultMiningConfig{}
	return Params{
		MinSupport:    d.DefaultMinSupport(),
		MinConfidence: d.DefaultMinConfidence(),
		LiftFilter:    true,
		TopK:          d.DefaultTopK(),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate 校验参数。阈值错误返回 InvalidThresholdError。
func (p Params) Validate() error {
	if err := core.ValidateThreshold("min_support", p.MinSupport); err != nil {
		return err
	}
	if err := core.ValidateThreshold("min_confidence", p.MinConfidence); err != nil {
		return err
	}
	if err := validate.Struct(p); err != nil {
		return core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, err.Error())
	}
	return nil
}

// LoadParams 按 默认值 -> 配置文件（可选）-> 环境变量 的优先级加载参数并校验。
func LoadParams(path string) (Params, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultParams(), "koanf"), nil); err != nil {
		return Params{}, fmt.Errorf("load defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Params{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Params{}, fmt.Errorf("load env: %w", err)
	}
	if err := splitQuery(k); err != nil {
		return Params{}, err
	}

	var p Params
	if err := k.Unmarshal("", &p); err != nil {
		return Params{}, fmt.Errorf("unmarshal params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func envKey(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
}

// splitQuery 把环境变量中的 "a,b" 转成列表。
func splitQuery(k *koanf.Koanf) error {
	s, ok := k.Get("query").(string)
	if !ok {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return k.Set("query", tags)
}
