// Package rank 实现打分阶段：画像与候选书的 TF-IDF 余弦相似度，
// 乘以热度/质量 boost，并为每本书生成可解释理由。
package rank

import (
	"math"
	"sort"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/feature"
	"github.com/gs-imak/book-swipe-sub000/text"
)

// 启发式系数来自线上调参结果，按原值保留为可覆盖配置，不要重新推导。
const (
	// DefaultPopularityCoef 是热度 boost 系数：score *= 1 + log10(readinglog+1) * coef
	DefaultPopularityCoef = 0.03

	// DefaultQualityCoef 是质量 boost 系数：score *= 1 + (rating - baseline) * coef
	DefaultQualityCoef = 0.05

	// DefaultQualityBaseline 是质量 boost 的基准评分
	DefaultQualityBaseline = 3.5

	// DefaultQualityMinRating 是质量 boost 的生效下限；rating 达到下限时
	// boost 恒为正，且随评分超出基准的幅度线性放大
	DefaultQualityMinRating = 4.0
)

// ScoreConfig 集中管理打分系数，零值字段回退到 Default*。
type ScoreConfig struct {
	PopularityCoef   float64 `yaml:"popularity_coef" json:"popularity_coef"`
	QualityCoef      float64 `yaml:"quality_coef" json:"quality_coef"`
	QualityBaseline  float64 `yaml:"quality_baseline" json:"quality_baseline"`
	QualityMinRating float64 `yaml:"quality_min_rating" json:"quality_min_rating"`
}

func (c ScoreConfig) withDefaults() ScoreConfig {
	if c.PopularityCoef == 0 {
		c.PopularityCoef = DefaultPopularityCoef
	}
	if c.QualityCoef == 0 {
		c.QualityCoef = DefaultQualityCoef
	}
	if c.QualityBaseline == 0 {
		c.QualityBaseline = DefaultQualityBaseline
	}
	if c.QualityMinRating == 0 {
		c.QualityMinRating = DefaultQualityMinRating
	}
	return c
}

// Options 控制单次打分调用的行为。
type Options struct {
	// CommunityBoost 开启热度 boost（需要候选带有社区阅读记录数）。
	CommunityBoost bool

	// ExcludeIDs 在任何打分工作之前剔除的候选 ID；被排除的候选
	// 不出现在输出里，也不消耗词表构建成本。
	ExcludeIDs map[string]bool

	// Config 可覆盖打分系数；零值回退默认。
	Config ScoreConfig
}

// ScoreBooks 对候选集做一次完整的 TF-IDF 打分。
//
// 退化情形：liked 为空或 candidates 为空时直接返回空切片，不报错。
//
// 流程：构建语料 [画像文档, 候选1文档, ...]；对整个语料建一次共享
// 词表；画像向量只算一次；每个候选算向量后取余弦相似度，再按序乘
// boost。FinalScore 等于 boost 后的 Score，无独立的再归一化。
//
// 结果按 FinalScore 降序稳定排序：同分保持候选原始顺序。
func ScoreBooks(candidates, liked []*core.Book, opts Options) []*core.ScoredBook {
	if len(liked) == 0 || len(candidates) == 0 {
		return []*core.ScoredBook{}
	}

	cfg := opts.Config.withDefaults()

	pool := make([]*core.Book, 0, len(candidates))
	for _, b := range candidates {
		if b == nil || (opts.ExcludeIDs != nil && opts.ExcludeIDs[b.ID]) {
			continue
		}
		pool = append(pool, b)
	}
	if len(pool) == 0 {
		return []*core.ScoredBook{}
	}

	profileDoc := feature.BuildUserProfile(liked)
	docs := make([]string, 0, len(pool)+1)
	docs = append(docs, profileDoc)
	candidateDocs := make([]string, len(pool))
	for i, b := range pool {
		candidateDocs[i] = feature.BuildFeatureString(b)
		docs = append(docs, candidateDocs[i])
	}

	vocab := text.BuildVocabulary(docs)
	profileVec := text.Vectorize(profileDoc, vocab)

	scored := make([]*core.ScoredBook, 0, len(pool))
	for i, b := range pool {
		score := text.Cosine(profileVec, text.Vectorize(candidateDocs[i], vocab))

		if opts.CommunityBoost {
			if logs := b.Readinglog(); logs > 0 {
				score *= 1 + math.Log10(float64(logs)+1)*cfg.PopularityCoef
			}
		}
		if b.Rating >= cfg.QualityMinRating {
			score *= 1 + (b.Rating-cfg.QualityBaseline)*cfg.QualityCoef
		}

		sb := core.NewScoredBook(b, score)
		sb.Reasons = BuildReasons(b, liked)
		scored = append(scored, sb)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})
	return scored
}
