package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/store"
)

// 测试用的内存协作方实现

type fakeShelf struct {
	books []*core.Book
	err   error
}

func (f *fakeShelf) GetLikedBooks(context.Context) ([]*core.Book, error) {
	return f.books, f.err
}

type fakeCache struct {
	books []*core.Book
	added [][]*core.Book
	err   error
}

func (f *fakeCache) GetCachedBooks(context.Context) ([]*core.Book, error) {
	return f.books, f.err
}

func (f *fakeCache) AddBooks(_ context.Context, books []*core.Book) error {
	f.added = append(f.added, books)
	return nil
}

type fakeCatalog struct {
	books    []*core.Book
	failures int // 前 N 次调用返回错误
	calls    int
}

func (f *fakeCatalog) FetchMoreCandidates(context.Context, []*core.Book) ([]*core.Book, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("catalog unavailable")
	}
	return f.books, nil
}

func testBook(id, title, author string, genres, moods []string, rating float64, desc string) *core.Book {
	return &core.Book{
		ID: id, Title: title, Author: author,
		Genres: genres, Moods: moods,
		Rating: rating, Description: desc,
	}
}

func likedFantasy() []*core.Book {
	return []*core.Book{
		testBook("l1", "The Name of the Wind", "Patrick Rothfuss",
			[]string{"fantasy"}, []string{"adventurous"}, 4.5,
			"A gifted young magician chases legends and music across a dangerous world."),
		testBook("l2", "Mistborn", "Brandon Sanderson",
			[]string{"fantasy"}, []string{"tense"}, 4.4,
			"A street thief with hidden magic joins a crew against an immortal tyrant."),
		testBook("l3", "The Final Empire", "Brandon Sanderson",
			[]string{"fantasy"}, []string{"tense"}, 4.3,
			"Rebels with forbidden magic plot the fall of a thousand year tyrant."),
	}
}

func candidatePoolBooks() []*core.Book {
	return []*core.Book{
		testBook("c1", "The Wise Man's Fear", "Patrick Rothfuss",
			[]string{"fantasy"}, []string{"adventurous"}, 4.3,
			"The gifted magician's legend grows as he chases dangerous magic and music."),
		testBook("c2", "Gone Girl", "Gillian Flynn",
			[]string{"thriller", "mystery"}, []string{"dark"}, 4.1,
			"A marriage unravels into a media circus when a wife disappears."),
		testBook("c3", "Pride and Prejudice", "Jane Austen",
			[]string{"romance", "classics"}, []string{"charming"}, 4.2,
			"Wit and courtship among the landed gentry of regency england."),
		testBook("c4", "Dune", "Frank Herbert",
			[]string{"science fiction"}, []string{"epic"}, 4.3,
			"A noble house takes stewardship of a desert planet and its precious spice."),
		testBook("c5", "The Way of Kings", "Brandon Sanderson",
			[]string{"fantasy", "epic"}, []string{"adventurous"}, 4.6,
			"Ancient oaths and shattered plains set the stage for a war of storms and honor."),
		testBook("c6", "Sourdough Baking", "Nobody Famous",
			[]string{"cooking"}, []string{"cozy"}, 3.2,
			"Flour hydration ratios and oven steam schedules for crusty loaves."),
	}
}

func newTestService(shelf core.LikedShelf, cache core.BookCache, catalog core.Catalog) *Service {
	kv := store.NewMemoryStore()
	return New(shelf, cache, catalog, kv).
		WithRand(rand.New(rand.NewSource(1))).
		WithSleep(func(time.Duration) {})
}

func TestRecommendWithoutLiked(t *testing.T) {
	svc := newTestService(&fakeShelf{}, &fakeCache{books: candidatePoolBooks()}, nil)
	if got := svc.Recommend(context.Background(), 3, nil); len(got) != 0 {
		t.Errorf("无喜欢书目时应返回空列表，得到 %d 个", len(got))
	}
}

func TestRecommendExcludesLikedAndRequested(t *testing.T) {
	pool := append(candidatePoolBooks(), likedFantasy()...)
	svc := newTestService(&fakeShelf{books: likedFantasy()}, &fakeCache{books: pool}, nil)

	got := svc.Recommend(context.Background(), 3, map[string]bool{"c2": true})
	if len(got) == 0 {
		t.Fatal("期望非空推荐")
	}
	if len(got) > 3 {
		t.Errorf("结果数 %d 超过请求的 count", len(got))
	}
	for _, sb := range got {
		switch sb.Book.ID {
		case "l1", "l2", "l3":
			t.Errorf("喜欢过的书 %s 不应出现在推荐里", sb.Book.ID)
		case "c2":
			t.Error("请求排除的书不应出现在推荐里")
		}
		if len(sb.Reasons) < 1 || len(sb.Reasons) > 3 {
			t.Errorf("理由数 = %d，应在 [1,3]", len(sb.Reasons))
		}
	}
}

func TestRecommendFetchesMoreWhenPoolSmall(t *testing.T) {
	cache := &fakeCache{books: candidatePoolBooks()[:2]}
	catalog := &fakeCatalog{books: candidatePoolBooks()[2:]}
	svc := newTestService(&fakeShelf{books: likedFantasy()}, cache, catalog)

	got := svc.Recommend(context.Background(), 3, nil)
	if catalog.calls == 0 {
		t.Error("候选不足 2*count 时应向外部书目拉新")
	}
	if len(cache.added) == 0 {
		t.Error("拉新结果应回写候选池")
	}
	if len(got) == 0 {
		t.Error("拉新后应有非空推荐")
	}
}

func TestRecommendCatalogRetriesThenFailSoft(t *testing.T) {
	var slept []time.Duration
	cache := &fakeCache{books: candidatePoolBooks()}
	catalog := &fakeCatalog{failures: 99}
	kv := store.NewMemoryStore()
	svc := New(&fakeShelf{books: likedFantasy()}, cache, catalog, kv).
		WithRand(rand.New(rand.NewSource(1))).
		WithSleep(func(d time.Duration) { slept = append(slept, d) })

	// count 够大，强制走拉新路径；catalog 一直失败
	got := svc.Recommend(context.Background(), 5, nil)

	if catalog.calls != 3 {
		t.Errorf("期望重试共 3 次尝试，实际 %d", catalog.calls)
	}
	if len(slept) != 2 || slept[0] != time.Second || slept[1] != 2*time.Second {
		t.Errorf("期望退避 1s/2s，实际 %v", slept)
	}
	// fail-soft：照常用缓存里已有的出结果
	if len(got) == 0 {
		t.Error("外部书目持续失败时应降级用缓存候选")
	}
}

func TestExploreColdStart(t *testing.T) {
	svc := newTestService(&fakeShelf{}, &fakeCache{books: candidatePoolBooks()}, nil)
	got := svc.Explore(context.Background(), 3)
	if len(got) != 3 {
		t.Fatalf("冷启动应按评分取前 count，得到 %d", len(got))
	}
	// 评分降序
	for i := 1; i < len(got); i++ {
		if got[i].Book.Rating > got[i-1].Book.Rating {
			t.Error("冷启动结果应按评分降序")
		}
	}
	if got[0].Book.ID != "c5" {
		t.Errorf("评分最高的 c5 应排第一，实际 %s", got[0].Book.ID)
	}
}

func TestExploreSkipsLiked(t *testing.T) {
	pool := append(candidatePoolBooks(), likedFantasy()...)
	svc := newTestService(&fakeShelf{books: likedFantasy()}, &fakeCache{books: pool}, nil)

	got := svc.Explore(context.Background(), 3)
	if len(got) == 0 {
		t.Fatal("期望非空探索结果")
	}
	for _, sb := range got {
		switch sb.Book.ID {
		case "l1", "l2", "l3":
			t.Errorf("喜欢过的书 %s 不应出现在探索结果里", sb.Book.ID)
		}
	}
}

func TestByMood(t *testing.T) {
	svc := newTestService(&fakeShelf{}, &fakeCache{books: candidatePoolBooks()}, nil)

	got := svc.ByMood(context.Background(), "cozy")
	if len(got) != 1 || got[0].ID != "c6" {
		t.Fatalf("期望只命中 c6，得到 %d 个", len(got))
	}

	if got := svc.ByMood(context.Background(), "unknown-mood"); len(got) != 0 {
		t.Errorf("未知档位应返回空，得到 %d 个", len(got))
	}
}

func TestByMoodCap(t *testing.T) {
	books := make([]*core.Book, 30)
	for i := range books {
		books[i] = &core.Book{
			ID:     string(rune('a' + i%26)) + string(rune('a'+i/26)),
			Moods:  []string{"cozy"},
			Rating: 3.0 + float64(i)*0.01,
		}
	}
	svc := newTestService(&fakeShelf{}, &fakeCache{books: books}, nil)

	got := svc.ByMood(context.Background(), "cozy")
	if len(got) != DefaultMoodTimeCap {
		t.Errorf("结果应封顶 %d，得到 %d", DefaultMoodTimeCap, len(got))
	}
	// 封顶时保留评分最高的
	if got[0].Rating < got[len(got)-1].Rating {
		t.Error("封顶结果应按评分降序")
	}
}

func TestByReadTime(t *testing.T) {
	books := []*core.Book{
		{ID: "short", Pages: 120, Rating: 4.0},
		{ID: "medium", Pages: 300, Rating: 4.1},
		{ID: "long", Pages: 900, Rating: 4.2},
	}
	svc := newTestService(&fakeShelf{}, &fakeCache{books: books}, nil)

	got := svc.ByReadTime(context.Background(), "medium")
	if len(got) != 1 || got[0].ID != "medium" {
		t.Fatalf("期望只命中 medium，得到 %d 个", len(got))
	}
}
