package rank

import (
	"context"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/pipeline"
)

// TFIDFNode 是打分阶段的 Pipeline 适配：把召回阶段产出的候选
// （此时 Score 尚无意义）整体重新打分并排序。
//
// rctx.LikedBooks 为空时输出空列表——没有信号就没有推荐。
type TFIDFNode struct {
	// Config 可覆盖打分系数，零值回退默认。
	Config ScoreConfig
}

func (n *TFIDFNode) Name() string        { return "rank.tfidf" }
func (n *TFIDFNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *TFIDFNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredBook,
) ([]*core.ScoredBook, error) {
	if rctx == nil || len(items) == 0 {
		return []*core.ScoredBook{}, nil
	}

	opts := Options{
		CommunityBoost: rctx.CommunityBoost,
		ExcludeIDs:     rctx.ExcludeIDs,
		Config:         n.Config,
	}
	return ScoreBooks(core.Books(items), rctx.LikedBooks, opts), nil
}

var _ pipeline.Node = (*TFIDFNode)(nil)
