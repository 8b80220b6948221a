package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gs-imak/book-swipe-sub000/core"
)

// 存储 key 约定
const (
	keyCacheHash  = "books:cache"       // hash: book id -> JSON
	keyCacheOrder = "books:cache:order" // zset: book id, score = 写入时间
	keyLikedData  = "books:liked"       // hash: book id -> JSON
	keyLikedOrder = "books:liked:order" // zset: book id, score = 喜欢时间
)

// DefaultCacheCeiling 是候选池上限。调用方负责限定池规模，
// 打分核心本身没有内部上限。
const DefaultCacheCeiling = 500

// BookCache 是建立在 KeyValueStore 上的有界候选池，实现 core.BookCache。
//
// 淘汰策略偏向保留喜欢的书：超出上限时按写入时间从旧到新淘汰，
// 跳过 likedIDs 命中的书。likedIDs 是显式注入的访问器，
// 避免缓存层在调用时反向伸手进存储模块。
type BookCache struct {
	kv       core.KeyValueStore
	maxSize  int
	likedIDs core.LikedIDsFunc
	now      func() time.Time
}

// NewBookCache 创建候选池。likedIDs 可为 nil（不偏向任何书）。
func NewBookCache(kv core.KeyValueStore, likedIDs core.LikedIDsFunc) *BookCache {
	return &BookCache{
		kv:       kv,
		maxSize:  DefaultCacheCeiling,
		likedIDs: likedIDs,
		now:      time.Now,
	}
}

// WithMaxSize 覆盖池上限（<=0 时保持默认）。
func (c *BookCache) WithMaxSize(n int) *BookCache {
	if n > 0 {
		c.maxSize = n
	}
	return c
}

func (c *BookCache) GetCachedBooks(ctx context.Context) ([]*core.Book, error) {
	raw, err := c.kv.HGetAll(ctx, keyCacheHash)
	if err != nil {
		return nil, err
	}
	// 按写入时间从新到旧排列，保证候选顺序确定
	ids, err := c.kv.ZRange(ctx, keyCacheOrder, 0, -1)
	if err != nil {
		return nil, err
	}

	books := make([]*core.Book, 0, len(raw))
	for _, id := range ids {
		data, ok := raw[id]
		if !ok {
			continue
		}
		var b core.Book
		if json.Unmarshal(data, &b) != nil {
			continue
		}
		books = append(books, &b)
	}
	return books, nil
}

func (c *BookCache) AddBooks(ctx context.Context, books []*core.Book) error {
	ts := float64(c.now().UnixNano())
	for i, b := range books {
		if b == nil || b.ID == "" {
			continue
		}
		data, err := json.Marshal(b)
		if err != nil {
			continue
		}
		if err := c.kv.HSet(ctx, keyCacheHash, b.ID, data); err != nil {
			return err
		}
		// 保持批次内相对顺序
		if err := c.kv.ZAdd(ctx, keyCacheOrder, ts+float64(i), b.ID); err != nil {
			return err
		}
	}
	return c.evict(ctx)
}

// evict 把池规模压回上限：按写入时间从旧到新淘汰，喜欢的书除外。
func (c *BookCache) evict(ctx context.Context) error {
	ids, err := c.kv.ZRange(ctx, keyCacheOrder, 0, -1)
	if err != nil {
		return err
	}
	over := len(ids) - c.maxSize
	if over <= 0 {
		return nil
	}

	var liked map[string]bool
	if c.likedIDs != nil {
		liked = c.likedIDs(ctx)
	}

	// ZRange 降序：最旧的在末尾
	for i := len(ids) - 1; i >= 0 && over > 0; i-- {
		id := ids[i]
		if liked != nil && liked[id] {
			continue
		}
		if err := c.kv.HDel(ctx, keyCacheHash, id); err != nil {
			return err
		}
		if err := c.kv.ZRem(ctx, keyCacheOrder, id); err != nil {
			return err
		}
		over--
	}
	return nil
}

var _ core.BookCache = (*BookCache)(nil)

// LikedShelfStore 是建立在 KeyValueStore 上的喜欢书架，实现 core.LikedShelf。
type LikedShelfStore struct {
	kv  core.KeyValueStore
	now func() time.Time
}

func NewLikedShelfStore(kv core.KeyValueStore) *LikedShelfStore {
	return &LikedShelfStore{kv: kv, now: time.Now}
}

// GetLikedBooks 返回喜欢的书，按喜欢时间从新到旧。
func (s *LikedShelfStore) GetLikedBooks(ctx context.Context) ([]*core.Book, error) {
	ids, err := s.kv.ZRange(ctx, keyLikedOrder, 0, -1)
	if err != nil {
		return nil, err
	}
	raw, err := s.kv.HGetAll(ctx, keyLikedData)
	if err != nil {
		return nil, err
	}

	books := make([]*core.Book, 0, len(ids))
	for _, id := range ids {
		data, ok := raw[id]
		if !ok {
			continue
		}
		var b core.Book
		if json.Unmarshal(data, &b) != nil {
			continue
		}
		books = append(books, &b)
	}
	return books, nil
}

// Like 把一本书加入书架，记录喜欢时间。
func (s *LikedShelfStore) Like(ctx context.Context, book *core.Book) error {
	if book == nil || book.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: like requires a book with id")
	}
	data, err := json.Marshal(book)
	if err != nil {
		return err
	}
	if err := s.kv.HSet(ctx, keyLikedData, book.ID, data); err != nil {
		return err
	}
	return s.kv.ZAdd(ctx, keyLikedOrder, float64(s.now().UnixNano()), book.ID)
}

// LikedIDs 返回喜欢书目的 ID 集合，可直接作为 core.LikedIDsFunc 注入。
func (s *LikedShelfStore) LikedIDs(ctx context.Context) map[string]bool {
	ids, err := s.kv.ZRange(ctx, keyLikedOrder, 0, -1)
	if err != nil {
		return map[string]bool{}
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

var _ core.LikedShelf = (*LikedShelfStore)(nil)
