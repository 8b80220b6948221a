package core

// ReasonType 标记推荐理由的来源信号。
type ReasonType string

const (
	ReasonGenre     ReasonType = "genre"     // 类型重合
	ReasonMood      ReasonType = "mood"      // 氛围重合
	ReasonAuthor    ReasonType = "author"    // 同作者
	ReasonRating    ReasonType = "rating"    // 高评分
	ReasonCommunity ReasonType = "community" // 社区热度
	ReasonSimilar   ReasonType = "similar"   // 兜底：整体相似
)

// Reason 是面向读者的可解释推荐理由。
// 与数值分数相互独立：低分书也可以携带 genre 命中理由。
type Reason struct {
	Type        ReasonType `json:"type"`
	Description string     `json:"description"`
}

// ScoredBook 是打分链路的统一承载结构：候选书 + 分数 + 理由。
// 每次调用现生成，不持久化。
//
// Score 是余弦相似度乘以各 boost 后的原始分；FinalScore 当前与 Score
// 相同（无独立的后归一化步骤），保留两个字段是为了给重排阶段留出
// 改写空间而不破坏原始分。
type ScoredBook struct {
	Book       *Book    `json:"book"`
	Score      float64  `json:"score"`
	FinalScore float64  `json:"finalScore"`
	Reasons    []Reason `json:"reasons"` // 1-3 条
}

// NewScoredBook 创建一个 ScoredBook，FinalScore 初始等于 Score。
func NewScoredBook(book *Book, score float64) *ScoredBook {
	return &ScoredBook{
		Book:       book,
		Score:      score,
		FinalScore: score,
		Reasons:    make([]Reason, 0, 3),
	}
}

// AddReason 追加一条理由，最多保留 3 条，超出部分丢弃。
func (s *ScoredBook) AddReason(t ReasonType, desc string) {
	if len(s.Reasons) >= 3 {
		return
	}
	s.Reasons = append(s.Reasons, Reason{Type: t, Description: desc})
}

// Books 提取 ScoredBook 列表中的书目。
func Books(scored []*ScoredBook) []*Book {
	out := make([]*Book, 0, len(scored))
	for _, s := range scored {
		if s != nil && s.Book != nil {
			out = append(out, s.Book)
		}
	}
	return out
}
