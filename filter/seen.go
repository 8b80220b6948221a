package filter

import (
	"context"

	"github.com/gs-imak/book-swipe-sub000/core"
)

// SeenFilter 剔除读者已经喜欢过、或请求明确排除的书。
// 这是主推荐路径在任何打分工作之前做的第一道过滤。
type SeenFilter struct {
	// ExtraIDs 是请求之外额外排除的 ID（可选）。
	ExtraIDs map[string]bool
}

func (f *SeenFilter) Name() string { return "filter.seen" }

func (f *SeenFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	book *core.Book,
) (bool, error) {
	if book == nil || book.ID == "" {
		return true, nil
	}
	if f.ExtraIDs != nil && f.ExtraIDs[book.ID] {
		return true, nil
	}
	if rctx == nil {
		return false, nil
	}
	if rctx.Excluded(book.ID) {
		return true, nil
	}
	for _, lb := range rctx.LikedBooks {
		if lb != nil && lb.ID == book.ID {
			return true, nil
		}
	}
	return false, nil
}

var _ Filter = (*SeenFilter)(nil)
