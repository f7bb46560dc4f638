package user

import (
	"fmt"
	"strconv"

	"github.com/MillennialCoin69/Main/internal/platform/database"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移user表: %w", err)
	}
	fmt.Println("User数据库表迁移成功。")
	return nil
}

// WarmupCache 从SQLite加载所有玩家的个人最佳分数，并预热到Redis的Hash中
func WarmupCache() error {
	if !database.IsRedisHealthy() {
		fmt.Println("Redis不可用，跳过用户缓存预热。")
		return nil
	}

	var users []User
	// 1. 从SQLite读取所有玩家记录
	if err := database.DB.Select("uuid", "best_score").Find(&users).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取玩家记录: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("无现有玩家数据，无需预热用户缓存。")
		return nil
	}

	// 2. 组装HSet所需的field/value对
	pairs := make([]interface{}, 0, len(users)*2)
	for _, u := range users {
		pairs = append(pairs, u.UUID, strconv.Itoa(u.BestScore))
	}

	// 3. 使用Pipeline批量写入Redis
	pipe := database.RDB.Pipeline()
	// 先清空旧的缓存，确保数据一致性
	pipe.Del(database.Ctx, BestScoreKey)
	pipe.HSet(database.Ctx, BestScoreKey, pairs...)

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热个人最佳分数到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个玩家的个人最佳分数到Redis。\n", len(users))
	return nil
}

// PrimeCachedDB 是user模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}
