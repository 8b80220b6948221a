package recall

import (
	"context"

	"github.com/gs-imak/book-swipe-sub000/core"
)

// Source 表示一个可复用的候选来源（本地缓存/喜欢书架/外部书目/...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Book, error)
}
