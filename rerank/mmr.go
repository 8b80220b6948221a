// Package rerank 实现重排阶段：在打分结果上做相关性/多样性权衡。
package rerank

import (
	"context"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/pipeline"
)

// DefaultMMRLambda 是 MMR 的相关性权重默认值（1-lambda 为多样性权重）。
// 启发式常量，按原值保留，不要重新推导。
const DefaultMMRLambda = 0.7

// ApplyMMR 对打分结果做贪心 Maximal-Marginal-Relevance 重排。
//
// len(scored) <= count 时原样返回（无需截断）。否则：首个必选
// FinalScore 最高者；此后每轮从剩余池中取
// lambda*FinalScore - (1-lambda)*maxSimilarityToSelected 最大的一项，
// 共再选 count-1 项。输出长度恰为 min(count, len(scored))。
//
// 候选间相似度刻意用 genre 重合率 + 同作者 0.5 的粗粒度近似，而非
// 真实的候选间向量距离：替换成向量相似度会改变可观测的排序行为。
func ApplyMMR(scored []*core.ScoredBook, count int, lambda float64) []*core.ScoredBook {
	if len(scored) <= count {
		return scored
	}
	if lambda <= 0 || lambda > 1 {
		lambda = DefaultMMRLambda
	}

	selected := make([]*core.ScoredBook, 0, count)
	remaining := make([]*core.ScoredBook, len(scored))
	copy(remaining, scored)

	// 首选：FinalScore 最高者（输入已按分排序时即首位，这里不依赖该前提）
	bestIdx := 0
	for i, s := range remaining {
		if s.FinalScore > remaining[bestIdx].FinalScore {
			bestIdx = i
		}
	}
	selected = append(selected, remaining[bestIdx])
	remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

	for len(selected) < count && len(remaining) > 0 {
		pickIdx, pickVal := 0, 0.0
		for i, cand := range remaining {
			maxSim := 0.0
			for _, sel := range selected {
				if sim := bookSimilarity(cand.Book, sel.Book); sim > maxSim {
					maxSim = sim
				}
			}
			val := lambda*cand.FinalScore - (1-lambda)*maxSim
			if i == 0 || val > pickVal {
				pickIdx, pickVal = i, val
			}
		}
		selected = append(selected, remaining[pickIdx])
		remaining = append(remaining[:pickIdx], remaining[pickIdx+1:]...)
	}
	return selected
}

// bookSimilarity 是 MMR 的候选间相似度近似：
// genre 重合数 / max(genre数A, genre数B, 1)，同作者再加 0.5。
func bookSimilarity(a, b *core.Book) float64 {
	genresA, genresB := a.GenreList(), b.GenreList()
	setA := make(map[string]bool, len(genresA))
	for _, g := range genresA {
		setA[g] = true
	}
	overlap := 0
	for _, g := range genresB {
		if setA[g] {
			overlap++
		}
	}

	denom := len(genresA)
	if len(genresB) > denom {
		denom = len(genresB)
	}
	if denom < 1 {
		denom = 1
	}

	sim := float64(overlap) / float64(denom)
	if a != nil && b != nil && a.Author != "" && a.Author == b.Author {
		sim += 0.5
	}
	return sim
}

// MMRNode 是 MMR 的 Pipeline 适配。
type MMRNode struct {
	Count  int     // 输出数量
	Lambda float64 // 相关性权重，0 值回退 DefaultMMRLambda
}

func (n *MMRNode) Name() string        { return "rerank.mmr" }
func (n *MMRNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *MMRNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredBook,
) ([]*core.ScoredBook, error) {
	if n.Count <= 0 {
		return items, nil
	}
	lambda := n.Lambda
	if lambda == 0 {
		lambda = DefaultMMRLambda
	}
	return ApplyMMR(items, n.Count, lambda), nil
}

var _ pipeline.Node = (*MMRNode)(nil)
