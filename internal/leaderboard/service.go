package leaderboard

import (
	"fmt"
	"time"

	"github.com/MillennialCoin69/Main/internal/platform/database"
	"github.com/MillennialCoin69/Main/internal/user"
	"github.com/MillennialCoin69/Main/pkg/blocklist"
)

// --- 模块级依赖 ---
// 由setup在启动时装配；测试可以用内存实现替换。

var (
	snapshotCache Cache
	nameMatcher   blocklist.Matcher
	topSize       = 10
)

// InitModule 装配排行榜服务的依赖。
// cache为nil时使用内存缓存，matcher为nil时使用内置违禁词表。
func InitModule(cache Cache, matcher blocklist.Matcher, top int) {
	if cache == nil {
		cache = NewMemoryCache(5 * time.Minute)
	}
	if matcher == nil {
		matcher = blocklist.Default()
	}
	if top <= 0 {
		top = 10
	}
	snapshotCache = cache
	nameMatcher = matcher
	topSize = top
}

// --- Service-Level Data Transfer Objects (DTOs) ---

// SubmitResultDTO 是提交分数后返回给控制器的结果
type SubmitResultDTO struct {
	Entry          EntryDTO
	IsPersonalBest bool
}

// BoardDTO 是榜单查询返回给控制器的结果。
// Stale 表示条目来自过期快照（存储故障时的降级读取）。
type BoardDTO struct {
	Entries []EntryDTO
	Stale   bool
}

// --- Service Functions ---

// SubmitScore 校验并持久化一次分数提交。
// 校验失败返回ValidationError且不发起任何写操作；
// 存储写入失败返回ErrStoreUnavailable，调用方可以重试。
func SubmitScore(userID, playerName string, score int) (*SubmitResultDTO, error) {
	trimmed, err := validateSubmission(playerName, score, nameMatcher)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := ScoreEntry{
		PlayerName: trimmed,
		Score:      score,
		Timestamp:  now,
		GameDate:   gameDateOf(now),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// 个人最佳的更新失败不影响提交本身的成功
	isPersonalBest, err := user.UpdatePersonalBest(userID, score)
	if err != nil {
		fmt.Printf("警告: 更新个人最佳分数失败: %v\n", err)
	}

	// 提交成功后异步刷新全时段榜单视图
	RequestRefresh()

	return &SubmitResultDTO{
		Entry:          toDTO(entry),
		IsPersonalBest: isPersonalBest,
	}, nil
}

// CheckIfHighScore 判断一个分数能否进入全时段前十。
// 无论结果如何，都会先把分数记入个人最佳（原行为如此）。
// 榜单查询失败时退化为保守阈值判定，不阻塞玩家。
func CheckIfHighScore(userID string, score int) bool {
	if _, err := user.UpdatePersonalBest(userID, score); err != nil {
		fmt.Printf("警告: 更新个人最佳分数失败: %v\n", err)
	}

	var top []ScoreEntry
	err := database.DB.Order("score DESC").Limit(topSize).Find(&top).Error
	if err != nil {
		fmt.Printf("警告: 高分判定查询失败，使用保守阈值: %v\n", err)
		// 查不到榜单时宁可放行：超过最低门槛就当作可能的高分
		return score >= HighScoreFloor
	}

	if len(top) < topSize {
		return true // 前十还没有填满
	}
	return score > top[len(top)-1].Score
}

// FetchLeaderboard 按查询范围返回榜单。
// 全时段查询先命中缓存（stale-while-revalidate）；
// daily/weekly查询始终绕过缓存直达存储。
func FetchLeaderboard(filter Filter) (*BoardDTO, error) {
	if filter == FilterAllTime {
		snap, err := snapshotCache.Get()
		if err != nil {
			fmt.Printf("警告: 读取榜单快照失败: %v\n", err)
		}
		if snap != nil {
			// 先返回缓存，同时请求后台刷新以更新视图
			RequestRefresh()
			return &BoardDTO{Entries: snap.Entries}, nil
		}
	}

	entries, err := queryBoard(filter)
	if err != nil {
		if filter == FilterAllTime {
			// 存储不可用时，过期的快照也比空白好
			stale, staleErr := snapshotCache.GetStale()
			if staleErr == nil && stale != nil {
				return &BoardDTO{Entries: stale.Entries, Stale: true}, nil
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if filter == FilterAllTime {
		if err := snapshotCache.Set(entries); err != nil {
			fmt.Printf("警告: 写入榜单快照失败: %v\n", err)
		}
	}
	return &BoardDTO{Entries: entries}, nil
}

// queryBoard 从存储中查询一个榜单。
func queryBoard(filter Filter) ([]EntryDTO, error) {
	var entries []ScoreEntry

	switch filter {
	case FilterDaily:
		today := gameDateOf(time.Now())
		if err := database.DB.Where("game_date = ?", today).
			Order("score DESC").Limit(topSize).Find(&entries).Error; err != nil {
			return nil, err
		}
	case FilterWeekly:
		weekAgo := time.Now().UTC().AddDate(0, 0, -7)
		// 注意排序：先按时间再按分数。
		// 这是沿用线上观察到的行为，不要"修正"成只按分数排序。
		if err := database.DB.Where("timestamp >= ?", weekAgo).
			Order("timestamp DESC").Order("score DESC").
			Limit(topSize).Find(&entries).Error; err != nil {
			return nil, err
		}
	default: // FilterAllTime
		if err := database.DB.Order("score DESC").Limit(topSize).Find(&entries).Error; err != nil {
			return nil, err
		}
	}

	return toDTOs(entries), nil
}

// GetPlayerRank 计算给定分数在全时段榜单中将占据的名次（从1开始）。
// 同分条目按存储迭代顺序排在前面。查询失败返回ErrStoreUnavailable。
func GetPlayerRank(score int) (int, error) {
	var all []ScoreEntry
	if err := database.DB.Order("score DESC").Find(&all).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	rank := 1
	for _, e := range all {
		if e.Score < score {
			return rank, nil
		}
		rank++
	}
	return rank, nil
}
