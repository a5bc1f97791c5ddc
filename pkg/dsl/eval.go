package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/tagmine/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once

	// programs 缓存已编译的表达式：expr -> cel.Program
	programs sync.Map
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
		cel.Variable("rule", cel.DynType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Compile 编译表达式并缓存，返回可并发复用的 Program。
// 编译失败属于输入错误（INVALID_INPUT）。
func Compile(expr string) (cel.Program, error) {
	if prg, ok := programs.Load(expr); ok {
		return prg.(cel.Program), nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, core.NewInvalidInput("dsl: compile %q: %v", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, core.NewInvalidInput("dsl: program %q: %v", expr, err)
	}
	programs.Store(expr, prg)
	return prg, nil
}

// EvaluateVars 用给定变量执行表达式，表达式必须返回布尔值。
// 未提供的变量以空 map 代替，避免引用时报 "no such attribute"。
func EvaluateVars(expr string, vars map[string]any) (bool, error) {
	if expr == "" {
		return true, nil
	}
	prg, err := Compile(expr)
	if err != nil {
		return false, err
	}

	input := map[string]any{
		"item":  map[string]any{},
		"label": map[string]any{},
		"rctx":  map[string]any{},
		"rule":  map[string]any{},
	}
	for k, v := range vars {
		input[k] = v
	}

	out, _, err := prg.Eval(input)
	if err != nil {
		// 对于不存在的 key，CEL 会返回错误；用户应使用 has(label.key) 检查存在性
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Eval 是候选 hashtag 的 DSL 解释器，使用 CEL (Common Expression Language) 实现。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.features.confidence > 0.7 / item.features.lift >= 1.2
//   - 标识：item.id.startsWith("#") / item.id != "#follow"
//   - 标签：label.rule.contains("#food")
//   - 查询："#ai" in rctx.query
//   - 逻辑：item.features.confidence > 0.6 && item.features.lift > 1
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	return &Eval{
		item: item,
		rctx: rctx,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。编译结果按表达式缓存。
func (e *Eval) Evaluate(expr string) (bool, error) {
	return EvaluateVars(expr, e.buildInput())
}

func (e *Eval) buildInput() map[string]any {
	labels := make(map[string]any)
	labelAccessor := make(map[string]any)
	item := map[string]any{}
	if e.item != nil {
		for k, v := range e.item.Labels {
			labels[k] = map[string]any{
				"value":  v.Value,
				"source": v.Source,
			}
			// label.rule 直接返回 value
			labelAccessor[k] = v.Value
		}
		features := make(map[string]any, len(e.item.Features))
		for k, v := range e.item.Features {
			features[k] = v
		}
		item = map[string]any{
			"id":       e.item.ID,
			"score":    e.item.Score,
			"features": features,
			"meta":     e.item.Meta,
			"labels":   labels,
		}
	}

	rctx := map[string]any{}
	if e.rctx != nil {
		rctx = map[string]any{
			"query":  []string(e.rctx.Query),
			"top_k":  int64(e.rctx.TopK),
			"params": e.rctx.Params,
		}
	}

	return map[string]any{
		"item":  item,
		"label": labelAccessor,
		"rctx":  rctx,
	}
}
