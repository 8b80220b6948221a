package filter

import (
	"context"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/pkg/dsl"
)

// ExprFilter 按 CEL 表达式过滤：表达式为真的书被保留。
// 用于配置驱动的书架规则，例如：
//
//	&ExprFilter{Expr: `book.rating >= 4.0 && "Fantasy" in book.genres`}
type ExprFilter struct {
	Expr string
}

func (f *ExprFilter) Name() string { return "filter.expr" }

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	book *core.Book,
) (bool, error) {
	if f.Expr == "" {
		return false, nil
	}
	keep, err := dsl.NewEval(core.NewScoredBook(book, 0), rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !keep, nil
}

var _ Filter = (*ExprFilter)(nil)
