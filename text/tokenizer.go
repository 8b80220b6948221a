// Package text 实现打分链路的文本原语：分词、IDF 词表、TF-IDF 稀疏向量与
// 余弦相似度。全部为纯函数，无共享可变状态，可安全并发调用。
package text

import "strings"

// stopwords 是固定停用词表：冠词、常见动词，加上书目领域的泛化词
// （"book" / "novel" / "story" 这类几乎出现在所有描述里的词）。
// 命中的 token 不参与任何打分。
var stopwords = map[string]bool{
	// 冠词 / 代词 / 连词 / 介词
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "his": true,
	"has": true, "had": true, "have": true, "this": true, "that": true,
	"these": true, "those": true, "with": true, "from": true, "they": true,
	"them": true, "their": true, "there": true, "then": true, "than": true,
	"she": true, "him": true, "its": true, "itself": true, "himself": true,
	"herself": true, "who": true, "whom": true, "whose": true, "which": true,
	"what": true, "when": true, "where": true, "why": true, "how": true,
	"into": true, "onto": true, "over": true, "under": true, "about": true,
	"after": true, "before": true, "between": true, "through": true,
	"during": true, "above": true, "below": true, "again": true,
	"further": true, "once": true, "here": true, "both": true, "each": true,
	"few": true, "more": true, "most": true, "other": true, "some": true,
	"such": true, "only": true, "own": true, "same": true, "too": true,
	"very": true, "just": true, "because": true, "until": true,
	"while": true, "against": true, "any": true, "also": true,
	// 常见动词
	"will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "must": true, "shall": true, "been": true,
	"being": true, "does": true, "did": true, "doing": true, "were": true,
	"get": true, "gets": true, "got": true, "make": true, "makes": true,
	"made": true, "take": true, "takes": true, "find": true, "finds": true,
	"tell": true, "tells": true, "told": true, "come": true, "comes": true,
	// 书目领域泛化词
	"book": true, "books": true, "novel": true, "novels": true,
	"story": true, "stories": true, "read": true, "reads": true,
	"reading": true, "reader": true, "author": true, "authors": true,
	"page": true, "pages": true, "chapter": true, "chapters": true,
	"tale": true, "tales": true, "written": true, "writes": true,
	"bestselling": true, "bestseller": true, "series": true, "edition": true,
}

// Tokenize 将原始文本规范化为 token 序列。
//
// 契约：转小写；剔除 [a-z0-9\s] 之外的字符；按空白切分；
// 丢弃长度 <=2 的 token 与停用词。除存在与否外不携带数值语义。
func Tokenize(raw string) []string {
	if raw == "" {
		return nil
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) <= 2 || stopwords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// IsStopword 判断 token 是否在停用词表中（供测试与上层过滤复用）。
func IsStopword(tok string) bool {
	return stopwords[tok]
}
