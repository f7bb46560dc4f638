package user

import (
	"errors"
	"fmt"

	"github.com/MillennialCoin69/Main/internal/platform/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateProvisionalUser 生成一个临时的、尚未持久化的新玩家UUID。
// 这个UUID将被设置到cookie中；只有提交过分数的玩家才会被持久化。
func CreateProvisionalUser() (string, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return newUUID.String(), nil
}

// IsValidUUID 检查给定字符串是否是合法的UUID。
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// GetPersonalBest 返回玩家的个人最佳分数。
// 优先读取Redis缓存；缓存不可用或未命中时退回到SQLite。
// 从未提交过分数的玩家返回0。
func GetPersonalBest(uuidStr string) (int, error) {
	if uuidStr == "" {
		return 0, nil
	}

	if score, ok := cachedBestScore(uuidStr); ok {
		return score, nil
	}

	var u User
	err := database.DB.Where("uuid = ?", uuidStr).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("无法从SQLite读取个人最佳分数: %w", err)
	}

	// 回填缓存
	cacheBestScore(uuidStr, u.BestScore)
	return u.BestScore, nil
}

// UpdatePersonalBest 在score超过玩家当前个人最佳时更新持久化记录，
// 并返回是否刷新了个人最佳。该操作保证BestScore单调不减。
func UpdatePersonalBest(uuidStr string, score int) (bool, error) {
	if uuidStr == "" {
		return false, nil
	}

	current, err := GetPersonalBest(uuidStr)
	if err != nil {
		return false, err
	}
	if score <= current {
		return false, nil
	}

	// Upsert：不存在则建新行，存在则只在分数更高时覆盖。
	// WHERE条件保证并发提交下BestScore不会回退。
	newUser := User{UUID: uuidStr, BestScore: score}
	err = database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uuid"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"best_score": score}),
		Where:     clause.Where{Exprs: []clause.Expression{clause.Lt{Column: "best_score", Value: score}}},
	}).Create(&newUser).Error
	if err != nil {
		return false, fmt.Errorf("无法在SQLite中更新个人最佳分数: %w", err)
	}

	// 缓存写入是尽力而为的；失败时下一次读取会从SQLite回填
	cacheBestScore(uuidStr, score)

	return true, nil
}
