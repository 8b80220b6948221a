package core

// RecommendContext 承载一次推荐请求的读者侧信息，贯穿整个 Pipeline 透传。
//
// 引擎没有多用户概念：LikedBooks 就是"这位读者喜欢什么"的全部信号，
// 每次调用都基于它现算，不在调用间缓存任何画像产物。
type RecommendContext struct {
	// LikedBooks 是读者点过喜欢的书，按喜欢时间从新到旧排列。
	// 排序影响画像权重（最近 5 本 x3，其次 5 本 x2，其余 x1）。
	LikedBooks []*Book

	// ExcludeIDs 在任何打分工作之前剔除的候选 ID 集合。
	ExcludeIDs map[string]bool

	// CommunityBoost 开启后，按社区阅读记录数对分数做乘性加成。
	CommunityBoost bool

	// Params 请求级上下文参数（如 count、mood 关键字等），供自定义 Node 读取。
	Params map[string]any
}

// Excluded 判断 id 是否被排除，nil 安全。
func (rctx *RecommendContext) Excluded(id string) bool {
	if rctx == nil || rctx.ExcludeIDs == nil {
		return false
	}
	return rctx.ExcludeIDs[id]
}

// LikedIDs 返回喜欢书目的 ID 集合。
func (rctx *RecommendContext) LikedIDs() map[string]bool {
	if rctx == nil {
		return map[string]bool{}
	}
	return BookIDSet(rctx.LikedBooks)
}
