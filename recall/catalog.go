package recall

import (
	"context"
	"time"

	"github.com/gs-imak/book-swipe-sub000/core"
)

// 外部书目拉取的重试参数：3 次尝试，指数退避 1s/2s。
const (
	catalogMaxAttempts = 3
	catalogBaseBackoff = time.Second
)

// CatalogSource 从外部书目提供方拉取更多候选，以喜欢的书为种子。
//
// 失败策略是 fail-soft：重试耗尽后返回空结果而不是错误，上层
// 降级为"用缓存里已有的"。空列表是唯一可观测的失败信号。
type CatalogSource struct {
	Catalog core.Catalog

	// Seeds 指定种子书；为空时用 rctx.LikedBooks。
	Seeds []*core.Book

	// sleep 可注入以便测试，缺省为 time.Sleep。
	Sleep func(time.Duration)
}

func (r *CatalogSource) Name() string { return "recall.catalog" }

func (r *CatalogSource) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Book, error) {
	if r.Catalog == nil {
		return nil, nil
	}

	seeds := r.Seeds
	if len(seeds) == 0 && rctx != nil {
		seeds = rctx.LikedBooks
	}

	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for attempt := 0; attempt < catalogMaxAttempts; attempt++ {
		if attempt > 0 {
			// 1s, 2s
			backoff := catalogBaseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, nil
			default:
			}
			sleep(backoff)
		}
		books, err := r.Catalog.FetchMoreCandidates(ctx, seeds)
		if err == nil {
			return books, nil
		}
	}
	return nil, nil
}

var _ Source = (*CatalogSource)(nil)
