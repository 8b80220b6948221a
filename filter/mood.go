package filter

import (
	"context"
	"strings"

	"github.com/gs-imak/book-swipe-sub000/core"
)

// moodKeywords 是 mood 过滤的固定关键字集：请求里的 mood 档位映射到
// 一组可能出现在书目 mood 字段里的词。纯元数据匹配，不参与打分。
var moodKeywords = map[string][]string{
	"happy":       {"lighthearted", "funny", "uplifting", "hopeful", "feel-good", "humorous", "charming"},
	"sad":         {"emotional", "melancholic", "bittersweet", "moving", "heartbreaking", "poignant"},
	"tense":       {"suspenseful", "dark", "thrilling", "gripping", "intense", "creepy"},
	"thoughtful":  {"reflective", "philosophical", "thought-provoking", "contemplative", "introspective"},
	"adventurous": {"epic", "adventurous", "action-packed", "fast-paced", "daring"},
	"romantic":    {"romantic", "passionate", "tender", "heartwarming", "swoony"},
	"cozy":        {"cozy", "comforting", "gentle", "warm", "quiet"},
}

// MoodKeywords 返回某个 mood 档位的关键字集合，未知档位返回 nil。
func MoodKeywords(mood string) []string {
	return moodKeywords[strings.ToLower(mood)]
}

// MatchesMood 判断书目的 mood 字段是否命中档位关键字，nil 安全。
func MatchesMood(book *core.Book, mood string) bool {
	keywords := MoodKeywords(mood)
	if len(keywords) == 0 {
		return false
	}
	for _, m := range book.MoodList() {
		lm := strings.ToLower(m)
		for _, kw := range keywords {
			if lm == kw || strings.Contains(lm, kw) {
				return true
			}
		}
	}
	return false
}

// MoodFilter 按 mood 档位过滤，保留命中的书。
type MoodFilter struct {
	Mood string
}

func (f *MoodFilter) Name() string { return "filter.mood" }

func (f *MoodFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	book *core.Book,
) (bool, error) {
	return !MatchesMood(book, f.Mood), nil
}

var _ Filter = (*MoodFilter)(nil)
