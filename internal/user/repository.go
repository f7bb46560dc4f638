package user

import (
	"strconv"
	"sync"

	"github.com/MillennialCoin69/Main/internal/platform/database"
)

// --- Redis 键名常量 ---

const (
	// BestScoreKey 是一个 Redis Hash 的键，缓存每个玩家的个人最佳分数。
	// Field: 玩家的UUID
	// Value: 分数的十进制字符串
	BestScoreKey = "user:best_score"
)

// --- 并发控制 ---

// repoMutex 是一个模块内部的、不导出的全局读写锁，
// 用于保护对本模块管理的Redis键的并发访问。
var repoMutex sync.RWMutex

// LockRepository 封装了对模块全局锁的写锁定操作。
func LockRepository() {
	repoMutex.Lock()
}

// UnlockRepository 封装了对模块全局锁的写解锁操作。
func UnlockRepository() {
	repoMutex.Unlock()
}

// RLockRepository 封装了对模块全局锁的读锁定操作。
func RLockRepository() {
	repoMutex.RLock()
}

// RUnlockRepository 封装了对模块全局锁的读解锁操作。
func RUnlockRepository() {
	repoMutex.RUnlock()
}

// --- Redis 缓存访问 ---
// Redis只是SQLite的加速层；它不可用时这些函数安静地降级，
// 调用方会退回到SQLite读取。

// cacheBestScore 将玩家的个人最佳分数写入Redis缓存（尽力而为）。
func cacheBestScore(uuidStr string, score int) {
	if !database.IsRedisHealthy() {
		return
	}
	_ = database.RDB.HSet(database.Ctx, BestScoreKey, uuidStr, strconv.Itoa(score)).Err()
}

// cachedBestScore 从Redis缓存读取玩家的个人最佳分数。
// 第二个返回值表示缓存是否命中。
func cachedBestScore(uuidStr string) (int, bool) {
	if !database.IsRedisHealthy() {
		return 0, false
	}
	valueStr, err := database.RDB.HGet(database.Ctx, BestScoreKey, uuidStr).Result()
	if err != nil {
		return 0, false
	}
	score, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, false
	}
	return score, true
}
