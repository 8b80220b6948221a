package service

import (
	"context"
	"strings"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/rank"
)

// GenerateBookChain 从起点书出发构建"书 A → 书 B → 书 C"的阅读链。
//
// 池 = 喜欢 ∪ 缓存候选，按 ID 去重并排除起点；池小于 chainLength 时
// 返回 (nil, nil)——"搭不出链"是预期信号，不是错误。
//
// 每一跳都把剩余池针对"当前链尾"单独重新打分（不是原始起点，
// 也不是整个画像：每跳重新聚焦到最新加入的节点），在前 5 名里
// 均匀随机取 1 本（避免每次都选 top1 导致输出固定），标记已用并
// 作为新链尾。打分产出为空时提前停止；不足 2 跳的链整条丢弃。
func (s *Service) GenerateBookChain(ctx context.Context, start *core.Book, chainLength int) (*core.BookChain, error) {
	if start == nil || chainLength < 2 {
		return nil, nil
	}

	liked := s.likedBooks(ctx)
	cached, err := s.cachedBooks(ctx)
	if err != nil {
		cached = nil
	}

	pool := make([]*core.Book, 0, len(liked)+len(cached))
	pool = append(pool, liked...)
	pool = append(pool, cached...)
	pool = core.DedupBooks(pool)

	remaining := make([]*core.Book, 0, len(pool))
	for _, b := range pool {
		if b.ID != start.ID {
			remaining = append(remaining, b)
		}
	}
	if len(remaining) < chainLength {
		return nil, nil
	}

	chain := make([]*core.Book, 0, chainLength)
	tail := start

	for hop := 0; hop < chainLength; hop++ {
		scored := rank.ScoreBooks(remaining, []*core.Book{tail}, rank.Options{Config: s.opts.Score})
		if len(scored) == 0 {
			break
		}

		window := chainTopWindow
		if len(scored) < window {
			window = len(scored)
		}
		next := scored[s.rng.Intn(window)].Book

		chain = append(chain, next)
		tail = next

		kept := remaining[:0]
		for _, b := range remaining {
			if b.ID != next.ID {
				kept = append(kept, b)
			}
		}
		remaining = kept
	}

	if len(chain) < 2 {
		return nil, nil
	}

	return &core.BookChain{
		StartBook: start,
		Chain:     chain,
		Theme:     chainTheme(start, chain),
	}, nil
}

// chainTheme 事后统计整条路径（含起点）的 genre/mood 频次，
// 用最高频 mood + 最高频 genre 组合出标签（如 "Suspenseful Mystery"）；
// 没有 mood 时退回只用 genre。平局取路径中先出现者，保证输出确定。
func chainTheme(start *core.Book, chain []*core.Book) string {
	path := make([]*core.Book, 0, len(chain)+1)
	path = append(path, start)
	path = append(path, chain...)

	topGenre := topTally(path, func(b *core.Book) []string { return b.GenreList() })
	topMood := topTally(path, func(b *core.Book) []string { return b.MoodList() })

	switch {
	case topMood != "" && topGenre != "":
		return topMood + " " + topGenre
	case topGenre != "":
		return topGenre
	case topMood != "":
		return topMood
	default:
		return "Eclectic"
	}
}

// topTally 返回出现次数最高的值；同次数时先出现者优先。
func topTally(path []*core.Book, field func(*core.Book) []string) string {
	counts := make(map[string]int)
	order := make([]string, 0, 8)
	for _, b := range path {
		for _, v := range field(b) {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if counts[v] == 0 {
				order = append(order, v)
			}
			counts[v]++
		}
	}

	best, bestCount := "", 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}
