package builders

import (
	"fmt"
	"time"

	"github.com/gs-imak/book-swipe-sub000/config"
	"github.com/gs-imak/book-swipe-sub000/filter"
	"github.com/gs-imak/book-swipe-sub000/pipeline"
	"github.com/gs-imak/book-swipe-sub000/pkg/conv"
	"github.com/gs-imak/book-swipe-sub000/rank"
	"github.com/gs-imak/book-swipe-sub000/recall"
	"github.com/gs-imak/book-swipe-sub000/rerank"
)

func init() {
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("rank.tfidf", BuildTFIDFNode)
	config.Register("rerank.mmr", BuildMMRNode)
	config.Register("rerank.genre_diversity", BuildGenreDiversityNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("filter", BuildFilterNode)
}

// BuildFanoutNode 只能从配置组装不需要外部依赖的来源；
// cache/catalog 来源需要注入协作方，由代码侧组装。
func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	fanout := &recall.Fanout{
		Dedup: conv.ConfigGet(cfg, "dedup", true),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func BuildTFIDFNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.TFIDFNode{
		Config: rank.ScoreConfig{
			PopularityCoef:   conv.ConfigGetFloat64(cfg, "popularity_coef", 0),
			QualityCoef:      conv.ConfigGetFloat64(cfg, "quality_coef", 0),
			QualityBaseline:  conv.ConfigGetFloat64(cfg, "quality_baseline", 0),
			QualityMinRating: conv.ConfigGetFloat64(cfg, "quality_min_rating", 0),
		},
	}, nil
}

func BuildMMRNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.MMRNode{
		Count:  int(conv.ConfigGetInt64(cfg, "count", 0)),
		Lambda: conv.ConfigGetFloat64(cfg, "lambda", 0),
	}, nil
}

func BuildGenreDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.GenreDiversityNode{
		MinGenres: int(conv.ConfigGetInt64(cfg, "min_genres", 3)),
	}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N: int(conv.ConfigGetInt64(cfg, "n", 0)),
	}, nil
}

// BuildFilterNode 支持的过滤器类型：seen / mood / readtime / expr。
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet(filterMap, "type", ""); filterType {
		case "seen":
			filters = append(filters, &filter.SeenFilter{})
		case "mood":
			filters = append(filters, &filter.MoodFilter{
				Mood: conv.ConfigGet(filterMap, "mood", ""),
			})
		case "readtime":
			filters = append(filters, &filter.ReadTimeFilter{
				Bucket: filter.ReadTimeBucket(conv.ConfigGet(filterMap, "bucket", "short")),
			})
		case "expr":
			filters = append(filters, &filter.ExprFilter{
				Expr: conv.ConfigGet(filterMap, "expr", ""),
			})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}
