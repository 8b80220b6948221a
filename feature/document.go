// Package feature 负责把 Book 与读者的喜欢列表折叠成可向量化的特征文档。
// 重复拼接就是加权机制：没有独立的数值权重向量，重复带来的词频即权重。
package feature

import (
	"regexp"
	"strings"

	"github.com/gs-imak/book-swipe-sub000/core"
)

const (
	genreRepeat = 3 // genre 权重：整组重复 3 次
	moodRepeat  = 2 // mood 权重：整组重复 2 次

	maxSubjects         = 15 // 最多取前 15 个主题标签
	maxDescriptionWords = 40 // 最多取前 40 个描述词
	minDescriptionLen   = 4  // 描述词长度 >3 才计入
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// BuildFeatureString 为一本书构建加权特征文档。
//
// 按序拼接：标题；作者；genre 串 x3；mood 串 x2；前 15 个主题标签；
// 去 HTML 后长度 >3 的前 40 个描述词。输出整体转小写。
// 纯函数；TF-IDF 是词袋模型，字段内的词序不影响打分。
func BuildFeatureString(book *core.Book) string {
	if book == nil {
		return ""
	}

	parts := make([]string, 0, 8)
	parts = append(parts, book.Title, book.Author)

	if genres := strings.Join(book.GenreList(), " "); genres != "" {
		for i := 0; i < genreRepeat; i++ {
			parts = append(parts, genres)
		}
	}
	if moods := strings.Join(book.MoodList(), " "); moods != "" {
		for i := 0; i < moodRepeat; i++ {
			parts = append(parts, moods)
		}
	}

	subjects := book.SubjectList()
	if len(subjects) > maxSubjects {
		subjects = subjects[:maxSubjects]
	}
	parts = append(parts, subjects...)

	if words := descriptionWords(book.Description); len(words) > 0 {
		parts = append(parts, strings.Join(words, " "))
	}

	return strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
}

// descriptionWords 去掉 HTML 标签后，取长度 >3 的前 maxDescriptionWords 个词。
func descriptionWords(desc string) []string {
	if desc == "" {
		return nil
	}
	plain := htmlTagPattern.ReplaceAllString(desc, " ")
	words := make([]string, 0, maxDescriptionWords)
	for _, w := range strings.Fields(plain) {
		if len(w) < minDescriptionLen {
			continue
		}
		words = append(words, w)
		if len(words) >= maxDescriptionWords {
			break
		}
	}
	return words
}
