package rerank

import (
	"context"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序/重排后截取前 N 本书。
//
// 使用场景：
//   - MMR 重排后限制最终返回数量
//   - mood/时长过滤路径统一封顶（默认 20）
type TopNNode struct {
	// N 要保留的数量；N <= 0 或 N >= len(items) 时不截断。
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredBook,
) ([]*core.ScoredBook, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}

var _ pipeline.Node = (*TopNNode)(nil)
