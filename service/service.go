// Package service 编排打分原语，提供引擎的三个直接消费方：
// 常规推荐（"为你推荐"/"探索不同口味"）、每日一书、阅读链。
package service

import (
	"math/rand"
	"time"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/rank"
	"github.com/gs-imak/book-swipe-sub000/rerank"
)

// 编排层默认参数。启发式常量按原值保留为可覆盖配置。
const (
	// DefaultLowSimilarityMax 是"探索不同口味"的低相似度阈值：
	// score < 0.3 才算真正偏离当前口味
	DefaultLowSimilarityMax = 0.3

	// DefaultDiverseMinRating 是探索路径的质量下限
	DefaultDiverseMinRating = 3.5

	// DefaultMinGenres 是探索路径要求前部覆盖的最少 genre 数
	DefaultMinGenres = 3

	// DefaultMoodTimeCap 是 mood/时长过滤路径的结果封顶
	DefaultMoodTimeCap = 20

	// minLikedForDailyPick 是每日一书需要的最少喜欢数；不足时返回 nil
	//（"信号不够"不是错误）
	minLikedForDailyPick = 3

	// dailyPickMMRPool 是每日一书先用 MMR 取出的池大小
	dailyPickMMRPool = 5

	// dailyPickTopWindow 是每日一书在 MMR 池前部均匀随机的窗口
	dailyPickTopWindow = 3

	// chainTopWindow 是阅读链每跳均匀随机的窗口
	chainTopWindow = 5
)

// dailyPickKey 是每日一书在 Store 里的唯一 key；记录只被覆盖，不被删除。
const dailyPickKey = "daily:pick"

// Options 集中管理编排层的可覆盖参数，零值字段回退默认。
type Options struct {
	Score            rank.ScoreConfig `yaml:"score" json:"score"`
	MMRLambda        float64          `yaml:"mmr_lambda" json:"mmr_lambda"`
	LowSimilarityMax float64          `yaml:"low_similarity_max" json:"low_similarity_max"`
	DiverseMinRating float64          `yaml:"diverse_min_rating" json:"diverse_min_rating"`
	MinGenres        int              `yaml:"min_genres" json:"min_genres"`
	MoodTimeCap      int              `yaml:"mood_time_cap" json:"mood_time_cap"`
}

func (o Options) withDefaults() Options {
	if o.MMRLambda == 0 {
		o.MMRLambda = rerank.DefaultMMRLambda
	}
	if o.LowSimilarityMax == 0 {
		o.LowSimilarityMax = DefaultLowSimilarityMax
	}
	if o.DiverseMinRating == 0 {
		o.DiverseMinRating = DefaultDiverseMinRating
	}
	if o.MinGenres == 0 {
		o.MinGenres = DefaultMinGenres
	}
	if o.MoodTimeCap == 0 {
		o.MoodTimeCap = DefaultMoodTimeCap
	}
	return o
}

// Service 是推荐编排层。所有打分原语都是纯函数；Service 把它们和
// 边界协作方（书架、候选池、外部书目、统计、存储）接在一起。
//
// 并发契约：打分路径无共享可变状态，可并发调用。唯一对时序敏感的
// 状态是每日一书记录：读-改-写没有事务，同日并发生成按
// "最后写入胜出、至少生成一次"处理。
type Service struct {
	Shelf   core.LikedShelf
	Cache   core.BookCache
	Catalog core.Catalog     // 可为 nil：不做拉新，只用缓存
	Stats   core.StatsService // 可为 nil：不做统计补全
	Store   core.Store        // 每日一书持久化

	opts  Options
	rng   *rand.Rand
	now   func() time.Time
	sleep func(time.Duration)
}

// New 创建编排层。随机源默认按当前时间播种；测试可用 WithRand 注入。
func New(shelf core.LikedShelf, cache core.BookCache, catalog core.Catalog, store core.Store) *Service {
	return &Service{
		Shelf:   shelf,
		Cache:   cache,
		Catalog: catalog,
		Store:   store,
		opts:    Options{}.withDefaults(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// WithOptions 覆盖编排参数。
func (s *Service) WithOptions(o Options) *Service {
	s.opts = o.withDefaults()
	return s
}

// WithStats 注入社区统计服务。
func (s *Service) WithStats(stats core.StatsService) *Service {
	s.Stats = stats
	return s
}

// WithRand 注入可播种的随机源，使排序测试可确定。
// 行为契约是"在小的 top-K 窗口内均匀随机"，而不是某个具体种子。
func (s *Service) WithRand(r *rand.Rand) *Service {
	if r != nil {
		s.rng = r
	}
	return s
}

// WithClock 注入时钟（每日一书的"今天"判断用）。
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// WithSleep 注入退避等待（测试免等）。
func (s *Service) WithSleep(sleep func(time.Duration)) *Service {
	if sleep != nil {
		s.sleep = sleep
	}
	return s
}
