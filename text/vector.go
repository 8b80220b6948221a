package text

import "math"

// Vector 是 term -> 权重 的稀疏向量。
type Vector map[string]float64

// lowInfoIDF 是低信息量阈值：idf <= 1 意味着 term 出现在语料的
// 每个文档里，对区分候选没有贡献，直接不进向量。
const lowInfoIDF = 1.0

// Vectorize 将一个文档转为 TF-IDF 稀疏向量。
//
// 算法：分词后统计词频；maxTF 取单词最大出现次数；
// weight(term) = (count/maxTF) * idf(term)，仅当 idf(term) > 1 时保留。
// 空 token 列表产生空向量，不是错误。
func Vectorize(doc string, vocab Vocabulary) Vector {
	tokens := Tokenize(doc)
	if len(tokens) == 0 {
		return Vector{}
	}

	counts := make(map[string]int, len(tokens))
	maxTF := 0
	for _, tok := range tokens {
		counts[tok]++
		if counts[tok] > maxTF {
			maxTF = counts[tok]
		}
	}

	vec := make(Vector, len(counts))
	for term, count := range counts {
		idf, ok := vocab[term]
		if !ok || idf <= lowInfoIDF {
			continue
		}
		vec[term] = float64(count) / float64(maxTF) * idf
	}
	return vec
}

// Cosine 计算两个稀疏向量的余弦相似度：共享 term 上的点积除以两个
// L2 范数之积；任一范数为 0 时定义为 0，永不除零。
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	// 遍历较小的向量求点积
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	var dot float64
	for term, wa := range small {
		if wb, ok := large[term]; ok {
			dot += wa * wb
		}
	}
	if dot == 0 {
		return 0
	}

	var normA, normB float64
	for _, w := range a {
		normA += w * w
	}
	for _, w := range b {
		normB += w * w
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
