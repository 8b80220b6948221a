package rerank

import (
	"context"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/pipeline"
)

// EnsureGenreDiversity 两遍选择，保证列表前部覆盖至少 minGenres 个
// 不同 genre。
//
// 第一遍按输入顺序（已按分排序）贪心挑选能引入至少一个新 genre 的
// 项，覆盖到 minGenres 个后停止；第二遍把其余未选项按原顺序追加。
// 只被"探索不同口味"路径使用，主推荐路径不调用。
func EnsureGenreDiversity(scored []*core.ScoredBook, minGenres int) []*core.ScoredBook {
	if len(scored) == 0 || minGenres <= 0 {
		return scored
	}

	seen := make(map[string]bool, minGenres)
	picked := make([]bool, len(scored))
	out := make([]*core.ScoredBook, 0, len(scored))

	for i, s := range scored {
		if len(seen) >= minGenres {
			break
		}
		introduces := false
		for _, g := range s.Book.GenreList() {
			if !seen[g] {
				introduces = true
				break
			}
		}
		if !introduces {
			continue
		}
		for _, g := range s.Book.GenreList() {
			seen[g] = true
		}
		picked[i] = true
		out = append(out, s)
	}

	for i, s := range scored {
		if !picked[i] {
			out = append(out, s)
		}
	}
	return out
}

// GenreDiversityNode 是类型多样性平衡的 Pipeline 适配。
type GenreDiversityNode struct {
	MinGenres int // 需要覆盖的最少 genre 数
}

func (n *GenreDiversityNode) Name() string        { return "rerank.genre_diversity" }
func (n *GenreDiversityNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *GenreDiversityNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredBook,
) ([]*core.ScoredBook, error) {
	return EnsureGenreDiversity(items, n.MinGenres), nil
}

var _ pipeline.Node = (*GenreDiversityNode)(nil)
