package recall

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/pipeline"
)

// Fanout 是一个 Recall Node：并发执行多个候选来源，并合并结果。
// 支持超时、限流，按 ID 去重（保留先声明的来源的版本）。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 每个来源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.ScoredBook,
) ([]*core.ScoredBook, error) {
	books, err := n.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	out := make([]*core.ScoredBook, 0, len(books))
	for _, b := range books {
		out = append(out, core.NewScoredBook(b, 0))
	}
	return out, nil
}

// Recall 并发执行全部来源；单个来源失败只丢弃该来源的结果，
// 不中断其他来源（fail-soft）。
func (n *Fanout) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Book, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		results = make([][]*core.Book, len(n.Sources))
		eg, _   = errgroup.WithContext(ctx)
	)

	// 限流：使用 semaphore 控制并发数
	sem := make(chan struct{}, n.MaxConcurrent)
	if n.MaxConcurrent <= 0 {
		close(sem) // 无限制时直接关闭，避免阻塞
	}

	for i, src := range n.Sources {
		idx, s := i, src

		eg.Go(func() error {
			if n.MaxConcurrent > 0 {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			books, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 超时或错误时返回空结果，不中断其他来源
				return nil
			}

			mu.Lock()
			results[idx] = books
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 按来源声明顺序拼接后去重，保证合并结果确定
	all := make([]*core.Book, 0, 64)
	for _, books := range results {
		all = append(all, books...)
	}
	if n.Dedup {
		all = core.DedupBooks(all)
	}
	return all, nil
}

var _ Source = (*Fanout)(nil)
var _ pipeline.Node = (*Fanout)(nil)
