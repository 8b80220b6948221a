package rank

import (
	"strings"
	"testing"

	"github.com/gs-imak/book-swipe-sub000/core"
)

func TestBuildReasonsPriority(t *testing.T) {
	liked := []*core.Book{
		{ID: "l1", Author: "Patrick Rothfuss", Genres: []string{"fantasy"}, Moods: []string{"adventurous"}},
		{ID: "l2", Author: "Brandon Sanderson", Genres: []string{"fantasy"}},
	}
	book := &core.Book{
		ID: "c", Author: "Patrick Rothfuss",
		Genres: []string{"fantasy"}, Moods: []string{"adventurous"},
		Rating:   4.5,
		Metadata: &core.BookMetadata{ReadinglogCount: 42000},
	}

	reasons := BuildReasons(book, liked)
	if len(reasons) != 3 {
		t.Fatalf("期望截到 3 条，得到 %d", len(reasons))
	}
	// 固定优先级：genre → author → mood
	if reasons[0].Type != core.ReasonGenre {
		t.Errorf("第 1 条应是 genre，得到 %s", reasons[0].Type)
	}
	if reasons[1].Type != core.ReasonAuthor {
		t.Errorf("第 2 条应是 author，得到 %s", reasons[1].Type)
	}
	if reasons[2].Type != core.ReasonMood {
		t.Errorf("第 3 条应是 mood，得到 %s", reasons[2].Type)
	}
	// genre 重合多本时理由里带数量
	if !strings.Contains(reasons[0].Description, "2 books") {
		t.Errorf("genre 理由应提到重合数量，得到 %q", reasons[0].Description)
	}
}

func TestBuildReasonsCommunityRounding(t *testing.T) {
	book := &core.Book{
		ID:       "c",
		Metadata: &core.BookMetadata{ReadinglogCount: 42700},
	}
	reasons := BuildReasons(book, nil)

	var community *core.Reason
	for i := range reasons {
		if reasons[i].Type == core.ReasonCommunity {
			community = &reasons[i]
		}
	}
	if community == nil {
		t.Fatal("阅读记录超过 1000 时应有社区理由")
	}
	if !strings.Contains(community.Description, "42k") {
		t.Errorf("社区理由应按千取整，得到 %q", community.Description)
	}
}

func TestBuildReasonsCommunityThreshold(t *testing.T) {
	book := &core.Book{
		ID:       "c",
		Metadata: &core.BookMetadata{ReadinglogCount: 1000},
	}
	for _, r := range BuildReasons(book, nil) {
		if r.Type == core.ReasonCommunity {
			t.Error("阅读记录恰为 1000 时不应有社区理由（门槛是严格大于）")
		}
	}
}

func TestBuildReasonsFallback(t *testing.T) {
	reasons := BuildReasons(&core.Book{ID: "c", Title: "Plain"}, nil)
	if len(reasons) != 1 || reasons[0].Type != core.ReasonSimilar {
		t.Errorf("无信号时应恰好一条 similar 兜底，得到 %v", reasons)
	}
}

func TestBuildReasonsRatingThreshold(t *testing.T) {
	low := BuildReasons(&core.Book{ID: "c", Rating: 3.9}, nil)
	for _, r := range low {
		if r.Type == core.ReasonRating {
			t.Error("评分低于 4.0 不应有高评分理由")
		}
	}

	high := BuildReasons(&core.Book{ID: "c", Rating: 4.0}, nil)
	found := false
	for _, r := range high {
		if r.Type == core.ReasonRating {
			found = true
		}
	}
	if !found {
		t.Error("评分达到 4.0 应有高评分理由")
	}
}
