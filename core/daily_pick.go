package core

import "time"

// DailyPickDateLayout 是每日推荐的日期格式：本地日历日，非时间戳。
// 用日历日字符串做"同一天"比较，对本地用户是时区稳定的。
const DailyPickDateLayout = "2006-01-02"

// DailyPick 是引擎唯一持久化的实体：每个日历日一条推荐记录。
//
// 生命周期：
//   - 当天不存在记录、或记录已被 dismiss → 重新生成并整体覆盖
//   - date 不再等于今天 → 视为过期，下次请求时重新生成
//   - Dismiss / Save 原地修改同一条记录，不产生新记录
//   - 永不删除，只被下一天的生成覆盖
type DailyPick struct {
	Book      *Book    `json:"book"`
	Reasons   []Reason `json:"reasons"`
	Date      string   `json:"date"` // YYYY-MM-DD，本地日历日
	Dismissed bool     `json:"dismissed"`
	Saved     bool     `json:"saved"`
}

// ValidFor 判断记录对给定时刻是否仍有效（同一天且未被 dismiss）。
func (p *DailyPick) ValidFor(now time.Time) bool {
	if p == nil || p.Book == nil {
		return false
	}
	return !p.Dismissed && p.Date == now.Format(DailyPickDateLayout)
}
