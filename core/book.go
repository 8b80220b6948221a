package core

// Book 是推荐链路中物品的统一承载结构，由外部书目缓存拥有，引擎侧只读。
// Genres/Moods 语义上是小集合，但保留列表顺序（首个 genre 视为主分类）。
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Genres      []string `json:"genres"`
	Moods       []string `json:"moods"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"` // 0-5
	Pages       int      `json:"pages"`

	// Metadata 是可选的外部元信息（社区统计、主题标签）。
	// 缺失时引擎按零值处理，不报错。
	Metadata *BookMetadata `json:"metadata,omitempty"`
}

// BookMetadata 承载来自外部数据源的补充信息。
type BookMetadata struct {
	Subjects        []string `json:"subjects,omitempty"` // 主题标签，最多约 20 个
	ReadinglogCount int64    `json:"readinglogCount,omitempty"`
	RatingsCount    int64    `json:"ratingsCount,omitempty"`
}

// GenreList 返回 Genres，nil 安全。
// 外部数据源可能缺失 genre/mood 字段，引擎统一按空集合处理。
func (b *Book) GenreList() []string {
	if b == nil {
		return nil
	}
	return b.Genres
}

// MoodList 返回 Moods，nil 安全。
func (b *Book) MoodList() []string {
	if b == nil {
		return nil
	}
	return b.Moods
}

// Readinglog 返回社区阅读记录数；无 Metadata 时返回 0。
func (b *Book) Readinglog() int64 {
	if b == nil || b.Metadata == nil {
		return 0
	}
	return b.Metadata.ReadinglogCount
}

// Subjects 返回主题标签，nil 安全。
func (b *Book) SubjectList() []string {
	if b == nil || b.Metadata == nil {
		return nil
	}
	return b.Metadata.Subjects
}

// DedupBooks 按 ID 去重，保留第一个出现的。
func DedupBooks(books []*Book) []*Book {
	seen := make(map[string]bool, len(books))
	out := make([]*Book, 0, len(books))
	for _, b := range books {
		if b == nil || b.ID == "" || seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}

// BookIDSet 将书目列表转为 ID 集合。
func BookIDSet(books []*Book) map[string]bool {
	set := make(map[string]bool, len(books))
	for _, b := range books {
		if b != nil && b.ID != "" {
			set[b.ID] = true
		}
	}
	return set
}
