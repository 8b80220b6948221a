package service

import (
	"context"
	"sort"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/filter"
	"github.com/gs-imak/book-swipe-sub000/rank"
	"github.com/gs-imak/book-swipe-sub000/recall"
	"github.com/gs-imak/book-swipe-sub000/rerank"
	"github.com/gs-imak/book-swipe-sub000/stats"
)

// Recommend 是"为你推荐"主路径。
//
// 候选 = 缓存池 - 喜欢 - 排除；可用候选少于 2*count 时尝试从外部
// 书目拉新（3 次尝试，1s/2s 退避，fail-soft）并按 ID 去重合并；
// 打分开启社区 boost；MMR（lambda 默认 0.7）重排后取前 count 条，
// 附带理由返回。
//
// 一切边界失败都降级为"用现有的"，最坏情况返回空列表；
// 空列表是唯一可观测的失败信号。
func (s *Service) Recommend(ctx context.Context, count int, excludeIDs map[string]bool) []*core.ScoredBook {
	if count <= 0 {
		return []*core.ScoredBook{}
	}

	liked := s.likedBooks(ctx)
	if len(liked) == 0 {
		return []*core.ScoredBook{}
	}

	exclude := mergeIDSets(excludeIDs, core.BookIDSet(liked))
	candidates := s.candidatePool(ctx, liked, exclude, count)
	if len(candidates) == 0 {
		return []*core.ScoredBook{}
	}

	candidates = stats.Enrich(ctx, s.Stats, candidates)

	scored := rank.ScoreBooks(candidates, liked, rank.Options{
		CommunityBoost: true,
		ExcludeIDs:     exclude,
		Config:         s.opts.Score,
	})
	return rerank.ApplyMMR(scored, count, s.opts.MMRLambda)
}

// Explore 是"探索不同口味"路径。
//
// 没有喜欢的书时直接按评分取最高的候选。否则对全部候选打分，
// 保留 score < LowSimilarityMax 且 rating >= DiverseMinRating 的
// （和当前口味真正不同、但质量有保证）；池子不够就放宽为全局
// 最低分的候选；最后做 genre 多样性平衡再截断。
func (s *Service) Explore(ctx context.Context, count int) []*core.ScoredBook {
	if count <= 0 {
		return []*core.ScoredBook{}
	}

	candidates, err := s.cachedBooks(ctx)
	if err != nil || len(candidates) == 0 {
		return []*core.ScoredBook{}
	}

	liked := s.likedBooks(ctx)
	if len(liked) == 0 {
		return s.topRated(candidates, count)
	}

	exclude := core.BookIDSet(liked)
	scored := rank.ScoreBooks(candidates, liked, rank.Options{
		ExcludeIDs: exclude,
		Config:     s.opts.Score,
	})

	pool := make([]*core.ScoredBook, 0, len(scored))
	for _, sb := range scored {
		if sb.FinalScore < s.opts.LowSimilarityMax && sb.Book.Rating >= s.opts.DiverseMinRating {
			pool = append(pool, sb)
		}
	}

	if len(pool) < count {
		// 放宽：取全局最低分的候选（与口味差异最大）
		relaxed := make([]*core.ScoredBook, len(scored))
		copy(relaxed, scored)
		sort.SliceStable(relaxed, func(i, j int) bool {
			return relaxed[i].FinalScore < relaxed[j].FinalScore
		})
		if len(relaxed) > count {
			relaxed = relaxed[:count]
		}
		pool = relaxed
	}

	pool = rerank.EnsureGenreDiversity(pool, s.opts.MinGenres)
	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}

// ByMood 是 mood 档位的纯元数据过滤：不打分，按固定关键字集匹配
// 书目 mood 字段，评分降序，封顶 MoodTimeCap。
func (s *Service) ByMood(ctx context.Context, mood string) []*core.Book {
	books, err := s.cachedBooks(ctx)
	if err != nil {
		return []*core.Book{}
	}

	out := make([]*core.Book, 0, len(books))
	for _, b := range books {
		if filter.MatchesMood(b, mood) {
			out = append(out, b)
		}
	}
	return capByRating(out, s.opts.MoodTimeCap)
}

// ByReadTime 按预估阅读时长档位过滤：不打分，评分降序，封顶 MoodTimeCap。
func (s *Service) ByReadTime(ctx context.Context, bucket filter.ReadTimeBucket) []*core.Book {
	books, err := s.cachedBooks(ctx)
	if err != nil {
		return []*core.Book{}
	}

	out := make([]*core.Book, 0, len(books))
	for _, b := range books {
		if filter.BucketOf(b) == bucket {
			out = append(out, b)
		}
	}
	return capByRating(out, s.opts.MoodTimeCap)
}

// candidatePool 组装主路径候选：缓存池起步，不足 2*count 时从外部
// 书目拉新合并（fail-soft），新书回写缓存。
func (s *Service) candidatePool(ctx context.Context, liked []*core.Book, exclude map[string]bool, count int) []*core.Book {
	cached, err := s.cachedBooks(ctx)
	if err != nil {
		cached = nil
	}

	available := 0
	for _, b := range cached {
		if b != nil && !exclude[b.ID] {
			available++
		}
	}

	if available < 2*count && s.Catalog != nil {
		src := &recall.CatalogSource{
			Catalog: s.Catalog,
			Seeds:   liked,
			Sleep:   s.sleep,
		}
		fetched, _ := src.Recall(ctx, &core.RecommendContext{LikedBooks: liked})
		if len(fetched) > 0 {
			cached = core.DedupBooks(append(cached, fetched...))
			if s.Cache != nil {
				// 回写失败不影响本次推荐
				_ = s.Cache.AddBooks(ctx, fetched)
			}
		}
	}
	return cached
}

// likedBooks 读书架，失败降级为空（无信号 → 空推荐，不报错）。
func (s *Service) likedBooks(ctx context.Context) []*core.Book {
	if s.Shelf == nil {
		return nil
	}
	liked, err := s.Shelf.GetLikedBooks(ctx)
	if err != nil {
		return nil
	}
	return liked
}

func (s *Service) cachedBooks(ctx context.Context) ([]*core.Book, error) {
	if s.Cache == nil {
		return nil, nil
	}
	return s.Cache.GetCachedBooks(ctx)
}

// topRated 无喜欢信号时的冷启动：按评分降序取前 count，理由照常生成。
func (s *Service) topRated(candidates []*core.Book, count int) []*core.ScoredBook {
	sorted := make([]*core.Book, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	if len(sorted) > count {
		sorted = sorted[:count]
	}
	out := make([]*core.ScoredBook, 0, len(sorted))
	for _, b := range sorted {
		sb := core.NewScoredBook(b, 0)
		sb.Reasons = rank.BuildReasons(b, nil)
		out = append(out, sb)
	}
	return out
}

func capByRating(books []*core.Book, cap int) []*core.Book {
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].Rating > books[j].Rating
	})
	if cap > 0 && len(books) > cap {
		books = books[:cap]
	}
	return books
}

func mergeIDSets(sets ...map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, set := range sets {
		for id, ok := range set {
			if ok {
				out[id] = true
			}
		}
	}
	return out
}
