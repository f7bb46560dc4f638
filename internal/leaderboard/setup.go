package leaderboard

import (
	"fmt"

	"github.com/MillennialCoin69/Main/internal/platform/config"
	"github.com/MillennialCoin69/Main/internal/platform/database"
	"github.com/MillennialCoin69/Main/pkg/blocklist"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&ScoreEntry{}); err != nil {
		return fmt.Errorf("无法迁移score_entries表: %w", err)
	}
	fmt.Println("Leaderboard数据库表迁移成功。")
	return nil
}

// WarmupCache 从SQLite重建全时段榜单快照
func WarmupCache() error {
	if err := RefreshSnapshotNow(); err != nil {
		return fmt.Errorf("预热榜单快照失败: %w", err)
	}
	fmt.Println("榜单快照预热成功。")
	return nil
}

// PrimeCachedDB 是leaderboard模块的初始化总入口
func PrimeCachedDB(cfg config.LeaderboardConfig) error {
	var cache Cache
	if database.IsRedisHealthy() {
		cache = NewRedisCache(cfg.CacheTTL())
	} else {
		fmt.Println("Redis不可用，榜单快照降级为进程内缓存。")
		cache = NewMemoryCache(cfg.CacheTTL())
	}
	InitModule(cache, blocklist.Default(), cfg.TopSize)

	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}
