// Package bookswipe 是一个图书推荐引擎（Book Recommendation Engine）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank → PostProcess）
// - 内容驱动: 基于 TF-IDF 文本画像做相似度打分，不依赖协同过滤
// - 可解释: 每个推荐结果携带 1~3 条结构化推荐理由（Reason）
// - Node 可扩展: 自定义 Node 即可插拔扩展（打分、多样化、过滤均可替换）
package bookswipe

import "github.com/gs-imak/book-swipe-sub000/pipeline"

// 轻量 facade：便于用户直接 import 根包使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
