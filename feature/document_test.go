package feature

import (
	"strings"
	"testing"

	"github.com/gs-imak/book-swipe-sub000/core"
)

func countWord(doc, word string) int {
	n := 0
	for _, w := range strings.Fields(doc) {
		if w == word {
			n++
		}
	}
	return n
}

func TestBuildFeatureString(t *testing.T) {
	book := &core.Book{
		ID:     "b1",
		Title:  "The Fifth Season",
		Author: "N.K. Jemisin",
		Genres: []string{"fantasy"},
		Moods:  []string{"tense"},
		Metadata: &core.BookMetadata{
			Subjects: []string{"apocalypse", "geology"},
		},
		Description: "A <b>world</b> ends in catastrophe again",
	}

	doc := BuildFeatureString(book)

	// genre 重复 3 次，mood 重复 2 次
	if got := countWord(doc, "fantasy"); got != 3 {
		t.Errorf("fantasy 出现 %d 次，期望 3", got)
	}
	if got := countWord(doc, "tense"); got != 2 {
		t.Errorf("tense 出现 %d 次，期望 2", got)
	}

	// HTML 标签被剥掉，标签内容保留
	if strings.Contains(doc, "<b>") {
		t.Error("特征文档不应包含 HTML 标签")
	}
	if !strings.Contains(doc, "world") {
		t.Error("标签内的词应保留")
	}

	// 描述词长度 >3 才计入
	if countWord(doc, "ends") != 1 {
		t.Error("长度 4 的描述词应计入")
	}

	// 整体小写
	if doc != strings.ToLower(doc) {
		t.Error("特征文档应整体小写")
	}
}

func TestBuildFeatureStringLimits(t *testing.T) {
	subjects := make([]string, 30)
	for i := range subjects {
		subjects[i] = "subject" + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	descWords := make([]string, 60)
	for i := range descWords {
		descWords[i] = "word" + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}

	book := &core.Book{
		Title:       "Limits",
		Author:      "Nobody",
		Metadata:    &core.BookMetadata{Subjects: subjects},
		Description: strings.Join(descWords, " "),
	}
	doc := BuildFeatureString(book)

	gotSubjects := 0
	gotDesc := 0
	for _, w := range strings.Fields(doc) {
		if strings.HasPrefix(w, "subject") {
			gotSubjects++
		}
		if strings.HasPrefix(w, "word") {
			gotDesc++
		}
	}
	if gotSubjects != 15 {
		t.Errorf("主题标签取 %d 个，期望截断到 15", gotSubjects)
	}
	if gotDesc != 40 {
		t.Errorf("描述词取 %d 个，期望截断到 40", gotDesc)
	}
}

func TestBuildFeatureStringNil(t *testing.T) {
	if doc := BuildFeatureString(nil); doc != "" {
		t.Errorf("nil book 应产生空文档，得到 %q", doc)
	}
	// 缺字段的书不报错
	doc := BuildFeatureString(&core.Book{Title: "Bare"})
	if doc != "bare" {
		t.Errorf("只有标题的书应产生 %q，得到 %q", "bare", doc)
	}
}

func TestBuildUserProfile(t *testing.T) {
	liked := make([]*core.Book, 12)
	for i := range liked {
		liked[i] = &core.Book{
			ID:    string(rune('a' + i)),
			Title: "marker" + string(rune('a'+i)),
		}
	}

	profile := BuildUserProfile(liked)

	// 最近 5 本 x3，其次 5 本 x2，其余 x1
	if got := countWord(profile, "markera"); got != 3 {
		t.Errorf("最近一本出现 %d 次，期望 3", got)
	}
	if got := countWord(profile, "markerf"); got != 2 {
		t.Errorf("第 6 本出现 %d 次，期望 2", got)
	}
	if got := countWord(profile, "markerk"); got != 1 {
		t.Errorf("第 11 本出现 %d 次，期望 1", got)
	}
}

func TestBuildUserProfileEmpty(t *testing.T) {
	if got := BuildUserProfile(nil); got != "" {
		t.Errorf("空喜欢列表应产生空画像，得到 %q", got)
	}
}
