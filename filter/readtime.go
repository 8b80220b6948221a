package filter

import (
	"context"

	"github.com/gs-imak/book-swipe-sub000/core"
)

// ReadTimeBucket 是按预估阅读时长划分的档位。
type ReadTimeBucket string

const (
	ReadTimeShort  ReadTimeBucket = "short"  // < 4 小时
	ReadTimeMedium ReadTimeBucket = "medium" // 4 - 10 小时
	ReadTimeLong   ReadTimeBucket = "long"   // > 10 小时
)

// pagesPerHour 是阅读速度估计值，用于从页数推导时长。
const pagesPerHour = 40.0

// EstimateReadingHours 按页数估算阅读时长（小时）。
func EstimateReadingHours(pages int) float64 {
	if pages <= 0 {
		return 0
	}
	return float64(pages) / pagesPerHour
}

// BucketOf 返回书目的阅读时长档位。
func BucketOf(book *core.Book) ReadTimeBucket {
	if book == nil {
		return ReadTimeShort
	}
	hours := EstimateReadingHours(book.Pages)
	switch {
	case hours < 4:
		return ReadTimeShort
	case hours <= 10:
		return ReadTimeMedium
	default:
		return ReadTimeLong
	}
}

// ReadTimeFilter 按阅读时长档位过滤，保留命中的书。
type ReadTimeFilter struct {
	Bucket ReadTimeBucket
}

func (f *ReadTimeFilter) Name() string { return "filter.readtime" }

func (f *ReadTimeFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	book *core.Book,
) (bool, error) {
	return BucketOf(book) != f.Bucket, nil
}

var _ Filter = (*ReadTimeFilter)(nil)
