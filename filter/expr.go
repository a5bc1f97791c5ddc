package filter

import (
	"context"

	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/pkg/dsl"
)

// ExprFilter 用 CEL 表达式描述"保留条件"：表达式为 true 的候选保留，否则过滤。
//
// 示例：
//   - `item.features.lift >= 1.2`
//   - `!item.id.startsWith("#follow")`
//
// 若 Invert 为 true，则表达式为 true 的候选被过滤。
type ExprFilter struct {
	Expr   string
	Invert bool
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" {
		return false, nil
	}
	ok, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	if f.Invert {
		return ok, nil
	}
	return !ok, nil
}
