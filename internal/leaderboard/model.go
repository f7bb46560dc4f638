package leaderboard

import (
	"time"

	"gorm.io/gorm"
)

// Filter 定义了排行榜查询范围的枚举类型
type Filter string

const (
	// FilterAllTime 表示全时段榜单
	FilterAllTime Filter = "all-time"
	// FilterDaily 表示当日榜单（按gameDate过滤）
	FilterDaily Filter = "daily"
	// FilterWeekly 表示最近7天榜单（按timestamp过滤）
	FilterWeekly Filter = "weekly"
)

// ParseFilter 解析查询参数中的filter值。
func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case FilterAllTime, FilterDaily, FilterWeekly:
		return Filter(s), true
	}
	return "", false
}

// ScoreEntry 定义了单条排行榜记录的数据结构。
// 记录一经写入即不可变：本系统只做插入和读取，没有更新和删除。
type ScoreEntry struct {
	gorm.Model

	// PlayerName 是玩家提交的显示名，已通过长度和违禁词校验
	PlayerName string `gorm:"type:varchar(20);not null" json:"playerName"`

	// Score 是本局得分，已通过范围和粒度校验
	Score int `gorm:"not null;index" json:"score"`

	// Timestamp 是提交时间
	Timestamp time.Time `gorm:"index" json:"timestamp"`

	// GameDate 是由Timestamp推导的日历日期 (YYYY-MM-DD)，用于当日榜单查询
	GameDate string `gorm:"type:varchar(10);index" json:"gameDate"`
}

// EntryDTO 是服务层向控制器层传递的排行榜条目
type EntryDTO struct {
	ID         uint      `json:"id"`
	PlayerName string    `json:"playerName"`
	Score      int       `json:"score"`
	Timestamp  time.Time `json:"timestamp"`
	GameDate   string    `json:"gameDate"`
}

// toDTO 将持久化模型转换为服务层DTO
func toDTO(e ScoreEntry) EntryDTO {
	return EntryDTO{
		ID:         e.ID,
		PlayerName: e.PlayerName,
		Score:      e.Score,
		Timestamp:  e.Timestamp,
		GameDate:   e.GameDate,
	}
}

// toDTOs 批量转换
func toDTOs(entries []ScoreEntry) []EntryDTO {
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toDTO(e)
	}
	return dtos
}

// gameDateOf 从时间推导YYYY-MM-DD格式的日历日期。
// 与原前端保持一致，统一使用UTC。
func gameDateOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
