package recall

import (
	"context"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/pipeline"
)

// CacheSource 从本地候选池召回。
// 池是有界的（外部缓存层维持约 500 本的上限），引擎不再设内部上限。
// CacheSource 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type CacheSource struct {
	Cache core.BookCache
}

func (r *CacheSource) Name() string        { return "recall.cache" }
func (r *CacheSource) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口：召回结果以零分 ScoredBook 进入链路，
// 分数由后续的 rank 阶段赋值。
func (r *CacheSource) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.ScoredBook,
) ([]*core.ScoredBook, error) {
	books, err := r.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	out := make([]*core.ScoredBook, 0, len(books))
	for _, b := range books {
		out = append(out, core.NewScoredBook(b, 0))
	}
	return out, nil
}

// Recall 实现 Source 接口。
func (r *CacheSource) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Book, error) {
	if r.Cache == nil {
		return nil, nil
	}
	return r.Cache.GetCachedBooks(ctx)
}

var _ Source = (*CacheSource)(nil)
var _ pipeline.Node = (*CacheSource)(nil)

// LikedSource 从喜欢书架召回（阅读链路径的候选池需要喜欢的书）。
type LikedSource struct {
	Shelf core.LikedShelf
}

func (r *LikedSource) Name() string { return "recall.liked" }

func (r *LikedSource) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Book, error) {
	// rctx 已携带喜欢列表时直接用，避免一次存储往返
	if rctx != nil && len(rctx.LikedBooks) > 0 {
		return rctx.LikedBooks, nil
	}
	if r.Shelf == nil {
		return nil, nil
	}
	return r.Shelf.GetLikedBooks(ctx)
}

var _ Source = (*LikedSource)(nil)
