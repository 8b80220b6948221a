package core

import "context"

// 本文件定义引擎消费的外部协作方接口。
// 实现在引擎之外（浏览器端存储、外部书目 API 等），引擎只依赖契约：
// 打分核心的所有可失败性都被挤压到这些边界上。

// LikedShelf 提供读者的喜欢书目。
type LikedShelf interface {
	// GetLikedBooks 返回喜欢的书，按喜欢时间从新到旧。
	GetLikedBooks(ctx context.Context) ([]*Book, error)
}

// LikedIDsFunc 只暴露喜欢书目的 ID 集合。
// 缓存淘汰只需要 ID，用显式注入的访问器替代运行时反向引用存储模块，
// 消除隐藏耦合与循环依赖风险。
type LikedIDsFunc func(ctx context.Context) map[string]bool

// BookCache 是有界候选池（上限约 500 本，淘汰时偏向保留喜欢的书）。
type BookCache interface {
	// GetCachedBooks 返回当前缓存的候选书目。
	GetCachedBooks(ctx context.Context) ([]*Book, error)

	// AddBooks 写入候选书目，按淘汰策略维持上限。
	AddBooks(ctx context.Context, books []*Book) error
}

// Catalog 是外部书目提供方（按关键字/种子扩展候选）。
// 调用可能失败；上层按"用缓存里已有的"降级，最坏情况返回空列表。
type Catalog interface {
	// FetchMoreCandidates 以种子书为线索拉取更多候选。
	FetchMoreCandidates(ctx context.Context, seedBooks []*Book) ([]*Book, error)
}

// StatsService 是社区统计的领域接口（阅读记录数、评分数）。
//
// 实现：
//   - stats.FeastClient（Feast Feature Store 在线特征）
//   - 测试中使用内存实现
type StatsService interface {
	// Name 返回统计服务名称（用于日志/监控）
	Name() string

	// BatchGetBookStats 批量获取书目的社区统计，缺失的 ID 不出现在结果中。
	BatchGetBookStats(ctx context.Context, bookIDs []string) (map[string]BookStats, error)

	// Close 关闭服务，释放资源
	Close() error
}

// BookStats 是单本书的社区统计。
type BookStats struct {
	ReadinglogCount int64
	RatingsCount    int64
}
