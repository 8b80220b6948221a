package rank

import (
	"fmt"

	"github.com/gs-imak/book-swipe-sub000/core"
)

// communityReasonMin 是社区理由的门槛：阅读记录数  > 1000 才值得一提。
const communityReasonMin = 1000

// BuildReasons 为候选书生成最多 3 条人类可读的推荐理由。
//
// 各信号独立评估，按固定优先级收集：genre 重合（取喜欢次数最高的
// 重合 genre）→ 作者精确匹配 → 首个重合 mood → 社区热度（>1000，
// 按千取整表述）→ 高评分（>=4.0）。一条都不命中时给出恰好一条
// similar 兜底。
//
// 返回值恒满足 1 <= len <= 3，且与数值分数相互独立。
func BuildReasons(book *core.Book, liked []*core.Book) []core.Reason {
	reasons := make([]core.Reason, 0, 3)

	if g, n := topOverlapGenre(book, liked); g != "" {
		desc := fmt.Sprintf("Matches your taste in %s", g)
		if n > 1 {
			desc = fmt.Sprintf("Matches %d books you liked in %s", n, g)
		}
		reasons = append(reasons, core.Reason{Type: core.ReasonGenre, Description: desc})
	}

	if book != nil && book.Author != "" && len(reasons) < 3 {
		for _, lb := range liked {
			if lb != nil && lb.Author == book.Author {
				reasons = append(reasons, core.Reason{
					Type:        core.ReasonAuthor,
					Description: fmt.Sprintf("By %s, an author you liked", book.Author),
				})
				break
			}
		}
	}

	if m := firstOverlapMood(book, liked); m != "" && len(reasons) < 3 {
		reasons = append(reasons, core.Reason{
			Type:        core.ReasonMood,
			Description: fmt.Sprintf("Shares the %s mood you enjoy", m),
		})
	}

	if book != nil && book.Readinglog() > communityReasonMin && len(reasons) < 3 {
		reasons = append(reasons, core.Reason{
			Type:        core.ReasonCommunity,
			Description: fmt.Sprintf("Logged by over %dk readers", book.Readinglog()/1000),
		})
	}

	if book != nil && book.Rating >= DefaultQualityMinRating && len(reasons) < 3 {
		reasons = append(reasons, core.Reason{
			Type:        core.ReasonRating,
			Description: fmt.Sprintf("Highly rated at %.1f stars", book.Rating),
		})
	}

	if len(reasons) == 0 {
		reasons = append(reasons, core.Reason{
			Type:        core.ReasonSimilar,
			Description: "Similar to books you enjoyed",
		})
	}
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return reasons
}

// topOverlapGenre 找重合 genre 中被喜欢次数最高的一个及其次数。
func topOverlapGenre(book *core.Book, liked []*core.Book) (string, int) {
	genres := book.GenreList()
	if len(genres) == 0 {
		return "", 0
	}

	// genre -> 喜欢列表中的出现次数（频率计数器，与迭代顺序无关）
	likedCount := make(map[string]int)
	for _, lb := range liked {
		for _, g := range lb.GenreList() {
			likedCount[g]++
		}
	}

	best, bestCount := "", 0
	for _, g := range genres {
		if n := likedCount[g]; n > bestCount {
			best, bestCount = g, n
		}
	}
	return best, bestCount
}

// firstOverlapMood 返回按候选书 mood 顺序首个与喜欢列表重合的 mood。
func firstOverlapMood(book *core.Book, liked []*core.Book) string {
	moods := book.MoodList()
	if len(moods) == 0 {
		return ""
	}
	likedMoods := make(map[string]bool)
	for _, lb := range liked {
		for _, m := range lb.MoodList() {
			likedMoods[m] = true
		}
	}
	for _, m := range moods {
		if likedMoods[m] {
			return m
		}
	}
	return ""
}
