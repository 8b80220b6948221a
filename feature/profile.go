package feature

import (
	"strings"

	"github.com/gs-imak/book-swipe-sub000/core"
)

// 近期权重分层：最近 5 本特征文档重复 3 次，其次 5 本重复 2 次，其余 1 次。
const (
	recentTierSize   = 5
	recentTierRepeat = 3
	middleTierRepeat = 2
)

// BuildUserProfile 把喜欢列表折叠成一个画像文档。
//
// 画像不是存储实体：每次调用现拼现算，永不缓存。liked 按喜欢时间
// 从新到旧排列，越新的书权重越高（文档重复次数即权重）。
func BuildUserProfile(liked []*core.Book) string {
	if len(liked) == 0 {
		return ""
	}

	var b strings.Builder
	for i, book := range liked {
		doc := BuildFeatureString(book)
		if doc == "" {
			continue
		}
		repeat := 1
		switch {
		case i < recentTierSize:
			repeat = recentTierRepeat
		case i < 2*recentTierSize:
			repeat = middleTierRepeat
		}
		for j := 0; j < repeat; j++ {
			b.WriteString(doc)
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}
