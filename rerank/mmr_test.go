package rerank

import (
	"testing"

	"github.com/gs-imak/book-swipe-sub000/core"
)

func scoredBook(id, author string, genres []string, score float64) *core.ScoredBook {
	return core.NewScoredBook(&core.Book{ID: id, Author: author, Genres: genres}, score)
}

func TestApplyMMRPassThrough(t *testing.T) {
	in := []*core.ScoredBook{
		scoredBook("a", "x", []string{"fantasy"}, 0.9),
		scoredBook("b", "y", []string{"romance"}, 0.8),
	}
	got := ApplyMMR(in, 5, DefaultMMRLambda)
	if len(got) != 2 {
		t.Fatalf("候选不足 count 时应原样返回，得到 %d 个", len(got))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Error("候选不足 count 时不应改变顺序")
		}
	}
}

func TestApplyMMRLength(t *testing.T) {
	in := []*core.ScoredBook{
		scoredBook("a", "x", []string{"fantasy"}, 0.9),
		scoredBook("b", "y", []string{"fantasy"}, 0.8),
		scoredBook("c", "z", []string{"romance"}, 0.7),
		scoredBook("d", "w", []string{"mystery"}, 0.6),
	}
	got := ApplyMMR(in, 3, DefaultMMRLambda)
	if len(got) != 3 {
		t.Fatalf("输出长度应为 min(count, len)，得到 %d", len(got))
	}
}

func TestApplyMMRFirstIsTopScore(t *testing.T) {
	in := []*core.ScoredBook{
		scoredBook("low", "x", []string{"fantasy"}, 0.2),
		scoredBook("top", "y", []string{"fantasy"}, 0.9),
		scoredBook("mid", "z", []string{"romance"}, 0.5),
	}
	got := ApplyMMR(in, 2, DefaultMMRLambda)
	if got[0].Book.ID != "top" {
		t.Errorf("首选应是 FinalScore 最高者，实际 %s", got[0].Book.ID)
	}
}

// 分数接近时，与已选项同 genre 同作者的候选应被多样性惩罚挤到后面。
func TestApplyMMRDiversityPenalty(t *testing.T) {
	in := []*core.ScoredBook{
		scoredBook("top", "rothfuss", []string{"fantasy"}, 0.90),
		scoredBook("twin", "rothfuss", []string{"fantasy"}, 0.89), // 与 top 相似度 1.5
		scoredBook("other", "austen", []string{"romance"}, 0.80),  // 与 top 相似度 0
	}
	got := ApplyMMR(in, 2, DefaultMMRLambda)
	if got[1].Book.ID != "other" {
		t.Errorf("第二位应是多样性更高的 other，实际 %s", got[1].Book.ID)
	}
}

func TestBookSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *core.Book
		expected float64
	}{
		{
			name:     "无重合",
			a:        &core.Book{Genres: []string{"fantasy"}},
			b:        &core.Book{Genres: []string{"romance"}},
			expected: 0,
		},
		{
			name:     "genre 全重合",
			a:        &core.Book{Genres: []string{"fantasy", "adventure"}},
			b:        &core.Book{Genres: []string{"fantasy", "adventure"}},
			expected: 1.0,
		},
		{
			name:     "部分重合按较大集合归一",
			a:        &core.Book{Genres: []string{"fantasy"}},
			b:        &core.Book{Genres: []string{"fantasy", "adventure"}},
			expected: 0.5,
		},
		{
			name:     "同作者加 0.5",
			a:        &core.Book{Author: "Le Guin", Genres: []string{"fantasy"}},
			b:        &core.Book{Author: "Le Guin", Genres: []string{"fantasy"}},
			expected: 1.5,
		},
		{
			name:     "双方无 genre 不除零",
			a:        &core.Book{},
			b:        &core.Book{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bookSimilarity(tt.a, tt.b); got != tt.expected {
				t.Errorf("bookSimilarity = %v, 期望 %v", got, tt.expected)
			}
		})
	}
}

func TestEnsureGenreDiversity(t *testing.T) {
	in := []*core.ScoredBook{
		scoredBook("f1", "", []string{"fantasy"}, 0.9),
		scoredBook("f2", "", []string{"fantasy"}, 0.8),
		scoredBook("r1", "", []string{"romance"}, 0.7),
		scoredBook("m1", "", []string{"mystery"}, 0.6),
	}
	got := EnsureGenreDiversity(in, 3)

	if len(got) != len(in) {
		t.Fatalf("多样性重排不应丢弃候选: %d != %d", len(got), len(in))
	}
	// 前 3 个应覆盖 3 个不同 genre：f1, r1, m1
	seen := map[string]bool{}
	for _, s := range got[:3] {
		for _, g := range s.Book.GenreList() {
			seen[g] = true
		}
	}
	if len(seen) < 3 {
		t.Errorf("前 3 个只覆盖 %d 个 genre，期望 >= 3", len(seen))
	}
	// 未入选的 f2 按原顺序追加在后
	if got[3].Book.ID != "f2" {
		t.Errorf("未引入新 genre 的候选应排在覆盖段之后，实际末位 %s", got[3].Book.ID)
	}
}

func TestEnsureGenreDiversityDegenerate(t *testing.T) {
	if got := EnsureGenreDiversity(nil, 3); len(got) != 0 {
		t.Error("空输入应返回空")
	}
	in := []*core.ScoredBook{scoredBook("a", "", []string{"fantasy"}, 0.5)}
	got := EnsureGenreDiversity(in, 3)
	if len(got) != 1 || got[0].Book.ID != "a" {
		t.Error("单候选应原样返回")
	}
}
