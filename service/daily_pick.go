package service

import (
	"context"
	"encoding/json"

	"github.com/gs-imak/book-swipe-sub000/core"
	"github.com/gs-imak/book-swipe-sub000/rank"
	"github.com/gs-imak/book-swipe-sub000/rerank"
	"github.com/gs-imak/book-swipe-sub000/stats"
)

// GenerateDailyPick 返回今天的每日一书。
//
// 状态机：{absent, valid-for-today, stale, dismissed}。
// 已有记录、date 等于今天且未被 dismiss 时原样返回（幂等）。
// 否则重新生成：喜欢的书不足 3 本时返回 (nil, nil)——信号不够是
// 预期结果，不是错误。生成时对整个缓存池打分（排除喜欢的书、
// 开社区 boost），MMR 取前 5，再在前 3 里均匀随机选 1 本，整体
// 覆盖旧记录。
//
// 读-改-写没有事务：同日并发调用可能竞争重新生成，契约是
// "最后写入胜出、至少生成一次"，不是严格恰好一次。
func (s *Service) GenerateDailyPick(ctx context.Context) (*core.DailyPick, error) {
	if existing := s.loadDailyPick(ctx); existing.ValidFor(s.now()) {
		return existing, nil
	}

	liked := s.likedBooks(ctx)
	if len(liked) < minLikedForDailyPick {
		return nil, nil
	}

	candidates, err := s.cachedBooks(ctx)
	if err != nil || len(candidates) == 0 {
		return nil, nil
	}
	candidates = stats.Enrich(ctx, s.Stats, candidates)

	scored := rank.ScoreBooks(candidates, liked, rank.Options{
		CommunityBoost: true,
		ExcludeIDs:     core.BookIDSet(liked),
		Config:         s.opts.Score,
	})
	top := rerank.ApplyMMR(scored, dailyPickMMRPool, s.opts.MMRLambda)
	if len(top) == 0 {
		return nil, nil
	}

	window := dailyPickTopWindow
	if len(top) < window {
		window = len(top)
	}
	chosen := top[s.rng.Intn(window)]

	pick := &core.DailyPick{
		Book:      chosen.Book,
		Reasons:   chosen.Reasons,
		Date:      s.now().Format(core.DailyPickDateLayout),
		Dismissed: false,
		Saved:     false,
	}
	if err := s.saveDailyPick(ctx, pick); err != nil {
		return nil, err
	}
	return pick, nil
}

// DismissDailyPick 原地把当前记录标记为 dismissed；下次生成会覆盖它。
func (s *Service) DismissDailyPick(ctx context.Context) error {
	pick := s.loadDailyPick(ctx)
	if pick == nil {
		return core.ErrStoreNotFound
	}
	pick.Dismissed = true
	return s.saveDailyPick(ctx, pick)
}

// SaveDailyPickToLibrary 原地把当前记录标记为 saved。
func (s *Service) SaveDailyPickToLibrary(ctx context.Context) error {
	pick := s.loadDailyPick(ctx)
	if pick == nil {
		return core.ErrStoreNotFound
	}
	pick.Saved = true
	return s.saveDailyPick(ctx, pick)
}

// loadDailyPick 读持久化记录；不存在或损坏都按 absent 处理。
func (s *Service) loadDailyPick(ctx context.Context) *core.DailyPick {
	if s.Store == nil {
		return nil
	}
	data, err := s.Store.Get(ctx, dailyPickKey)
	if err != nil {
		return nil
	}
	var pick core.DailyPick
	if json.Unmarshal(data, &pick) != nil {
		return nil
	}
	return &pick
}

func (s *Service) saveDailyPick(ctx context.Context, pick *core.DailyPick) error {
	if s.Store == nil {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "store: daily pick store not configured")
	}
	data, err := json.Marshal(pick)
	if err != nil {
		return err
	}
	return s.Store.Set(ctx, dailyPickKey, data)
}
