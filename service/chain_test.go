package service

import (
	"context"
	"testing"

	"github.com/gs-imak/book-swipe-sub000/core"
)

func TestGenerateBookChain(t *testing.T) {
	svc := newTestService(&fakeShelf{books: likedFantasy()}, &fakeCache{books: candidatePoolBooks()}, nil)
	start := likedFantasy()[0]

	chain, err := svc.GenerateBookChain(context.Background(), start, 3)
	if err != nil {
		t.Fatalf("生成出错: %v", err)
	}
	if chain == nil {
		t.Fatal("池子够大时应生成阅读链")
	}
	if chain.StartBook.ID != start.ID {
		t.Error("起点书应保留在结果里")
	}
	if len(chain.Chain) < 2 {
		t.Fatalf("链长 %d，应至少 2 跳", len(chain.Chain))
	}
	if chain.Theme == "" {
		t.Error("主题标签不应为空")
	}

	seen := map[string]bool{start.ID: true}
	for _, b := range chain.Chain {
		if seen[b.ID] {
			t.Errorf("链中出现重复的书 %s", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestGenerateBookChainPoolTooSmall(t *testing.T) {
	svc := newTestService(&fakeShelf{books: likedFantasy()[:1]}, &fakeCache{}, nil)
	start := likedFantasy()[0]

	chain, err := svc.GenerateBookChain(context.Background(), start, 3)
	if err != nil {
		t.Fatalf("池子不足不应报错: %v", err)
	}
	if chain != nil {
		t.Error("池子不足 chainLength 时应返回 nil")
	}
}

func TestGenerateBookChainDegenerate(t *testing.T) {
	svc := newTestService(&fakeShelf{books: likedFantasy()}, &fakeCache{books: candidatePoolBooks()}, nil)

	if chain, _ := svc.GenerateBookChain(context.Background(), nil, 3); chain != nil {
		t.Error("nil 起点应返回 nil")
	}
	if chain, _ := svc.GenerateBookChain(context.Background(), likedFantasy()[0], 1); chain != nil {
		t.Error("chainLength < 2 应返回 nil")
	}
}

func TestChainTheme(t *testing.T) {
	start := testBook("s", "Start", "", []string{"mystery"}, []string{"suspenseful"}, 4.0, "")
	chain := []*core.Book{
		testBook("a", "A", "", []string{"mystery"}, []string{"suspenseful"}, 4.0, ""),
		testBook("b", "B", "", []string{"thriller"}, []string{"dark"}, 4.0, ""),
	}

	got := chainTheme(start, chain)
	if got != "suspenseful mystery" {
		t.Errorf("主题 = %q, 期望最高频 mood + 最高频 genre", got)
	}

	// 没有 mood 时只用 genre
	bare := chainTheme(
		testBook("s", "Start", "", []string{"fantasy"}, nil, 4.0, ""),
		[]*core.Book{testBook("a", "A", "", []string{"fantasy"}, nil, 4.0, "")},
	)
	if bare != "fantasy" {
		t.Errorf("无 mood 时主题 = %q, 期望 %q", bare, "fantasy")
	}

	// 全空时兜底
	empty := chainTheme(testBook("s", "Start", "", nil, nil, 0, ""), nil)
	if empty != "Eclectic" {
		t.Errorf("无任何信号时主题 = %q, 期望 Eclectic", empty)
	}
}
