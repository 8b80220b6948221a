// Package stats 实现社区统计的基础设施层：从 Feast Feature Store 在线
// 获取书目的阅读记录数与评分数，供热度 boost 与社区理由使用。
package stats

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/gs-imak/book-swipe-sub000/core"
)

// 在线特征名约定（Feast featureview:feature 形式）。
const (
	featureReadinglog = "book_stats:readinglog_count"
	featureRatings    = "book_stats:ratings_count"

	entityBookID = "book_id"
)

// FeastClient 是基于官方 Feast Go SDK 的 StatsService 实现。
//
// 统计缺失是常态不是错误：某本书没有特征行时，它不出现在结果里，
// 上层按零值处理（fail-soft，与整条链路的降级策略一致）。
type FeastClient struct {
	client  *feastsdk.GrpcClient
	project string
}

// NewFeastClient 创建 Feast gRPC 客户端。port 为 0 时使用默认 6565。
func NewFeastClient(host string, port int, project string) (*FeastClient, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("create feast grpc client: %w", err)
	}
	return &FeastClient{client: client, project: project}, nil
}

func (c *FeastClient) Name() string { return "stats.feast" }

// BatchGetBookStats 批量获取书目的社区统计。
func (c *FeastClient) BatchGetBookStats(ctx context.Context, bookIDs []string) (map[string]core.BookStats, error) {
	if len(bookIDs) == 0 {
		return map[string]core.BookStats{}, nil
	}

	entities := make([]feastsdk.Row, len(bookIDs))
	for i, id := range bookIDs {
		entities[i] = feastsdk.Row{entityBookID: feastsdk.StrVal(id)}
	}

	resp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: []string{featureReadinglog, featureRatings},
		Entities: entities,
		Project:  c.project,
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleStats, core.ErrorCodeUnavailable,
			fmt.Sprintf("stats: feast get online features failed: %v", err))
	}

	rows := resp.Rows()
	out := make(map[string]core.BookStats, len(bookIDs))
	for i, row := range rows {
		if i >= len(bookIDs) {
			break
		}
		logs, okLogs := int64Feature(row[featureReadinglog])
		ratings, okRatings := int64Feature(row[featureRatings])
		if !okLogs && !okRatings {
			continue
		}
		out[bookIDs[i]] = core.BookStats{
			ReadinglogCount: logs,
			RatingsCount:    ratings,
		}
	}
	return out, nil
}

func (c *FeastClient) Close() error {
	return c.client.Close()
}

// int64Feature 从 Feast 值中提取整数统计，兼容 int64/int32/double 存法。
func int64Feature(v *feasttypes.Value) (int64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.Val.(type) {
	case *feasttypes.Value_Int64Val:
		return val.Int64Val, true
	case *feasttypes.Value_Int32Val:
		return int64(val.Int32Val), true
	case *feasttypes.Value_DoubleVal:
		return int64(val.DoubleVal), true
	default:
		return 0, false
	}
}

var _ core.StatsService = (*FeastClient)(nil)

// Enrich 用统计结果补全候选书的 Metadata；统计获取失败时原样返回
// 候选（fail-soft），永不因统计不可用而中断推荐。
func Enrich(ctx context.Context, svc core.StatsService, books []*core.Book) []*core.Book {
	if svc == nil || len(books) == 0 {
		return books
	}
	ids := make([]string, 0, len(books))
	for _, b := range books {
		if b != nil && b.ID != "" {
			ids = append(ids, b.ID)
		}
	}
	statsByID, err := svc.BatchGetBookStats(ctx, ids)
	if err != nil {
		return books
	}
	for _, b := range books {
		if b == nil {
			continue
		}
		s, ok := statsByID[b.ID]
		if !ok {
			continue
		}
		if b.Metadata == nil {
			b.Metadata = &core.BookMetadata{}
		}
		if b.Metadata.ReadinglogCount == 0 {
			b.Metadata.ReadinglogCount = s.ReadinglogCount
		}
		if b.Metadata.RatingsCount == 0 {
			b.Metadata.RatingsCount = s.RatingsCount
		}
	}
	return books
}
