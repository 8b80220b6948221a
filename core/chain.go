package core

// BookChain 是"阅读路径"：从起点书出发逐跳相似扩展得到的短链。
// 完全临时，每次请求重新生成，不持久化。
type BookChain struct {
	StartBook *Book   `json:"startBook"`
	Chain     []*Book `json:"chain"` // 长度 >=2，否则整条链被丢弃
	Theme     string  `json:"theme"` // 事后从全路径的多数 genre/mood 推导
}
