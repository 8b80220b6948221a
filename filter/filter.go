package filter

import (
	"context"

	"github.com/gs-imak/book-swipe-sub000/core"
)

// Filter 是过滤器的抽象接口，用于判断一本候选书是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断候选书是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, book *core.Book) (bool, error)
}
