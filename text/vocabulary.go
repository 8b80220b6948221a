package text

import "math"

// Vocabulary 是 term -> 平滑 IDF 的映射，作用域严格限定在一次打分调用的
// 语料（画像文档 + 该次调用的全部候选文档）内。
//
// 刻意的不变式：调用内确定、调用间独立——词表每次从零重建，
// 永不跨调用共享或复用。
type Vocabulary map[string]float64

// BuildVocabulary 对有序文档列表计算平滑 IDF。
//
// 每个文档取 token 去重后的集合（同一文档内的重复不重复计数）；
// df(term) = 至少包含该 term 一次的文档数；
// idf(term) = ln((N+1)/(df+1)) + 1，N 为文档总数。
// 平滑保证 idf 恒 >=1 且永不除零。
//
// 下游只保留 idf > 1 的 term：出现在所有文档里的词（包括整个语料
// 共享的泛化 genre 词）被静默丢弃，这是信噪过滤，不是缺陷。
func BuildVocabulary(docs []string) Vocabulary {
	n := len(docs)
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			df[tok]++
		}
	}

	vocab := make(Vocabulary, len(df))
	for term, freq := range df {
		vocab[term] = math.Log(float64(n+1)/float64(freq+1)) + 1
	}
	return vocab
}
