package leaderboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MillennialCoin69/Main/pkg/blocklist"
)

// --- 校验常量 ---

const (
	// MaxNameLength 是玩家名的最大长度
	MaxNameLength = 20
	// MaxScore 是允许提交的最高分数
	MaxScore = 10000
	// ScoreUnit 是游戏的计分单位，合法分数必须是它的整数倍
	ScoreUnit = 10
	// HighScoreFloor 是查询榜单失败时，高分判定退化使用的保守阈值
	HighScoreFloor = 50
)

// --- 错误分类 ---

// ErrStoreUnavailable 表示持久化存储暂时不可用。
// 读取路径会尝试降级到缓存；提交路径向调用方暴露可重试的失败。
var ErrStoreUnavailable = errors.New("score store unavailable")

// ValidationError 表示提交内容未通过校验。
// 校验失败时不会发起任何写操作，玩家可以修正后重新提交。
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// newValidationError 构造一个带用户可读原因的校验错误
func newValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidationError 判断错误是否是校验错误。
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// --- 校验逻辑 ---

// validScore 检查分数的范围和粒度。
// 贪吃蛇正常水平的分数远低于上限，但给真正的高手留出空间。
func validScore(score int) bool {
	return score > 0 && score <= MaxScore && score%ScoreUnit == 0
}

// validateSubmission 按数据模型不变量校验一次提交。
// 返回的玩家名已去除首尾空白。
func validateSubmission(playerName string, score int, matcher blocklist.Matcher) (string, error) {
	trimmed := strings.TrimSpace(playerName)
	if trimmed == "" {
		return "", newValidationError("Player name is required")
	}
	if len(playerName) > MaxNameLength {
		return "", newValidationError(fmt.Sprintf("Name must be %d characters or less", MaxNameLength))
	}
	if matcher.IsBlocked(playerName) {
		return "", newValidationError("Please choose a different name")
	}
	if !validScore(score) {
		return "", newValidationError("Invalid score detected")
	}
	return trimmed, nil
}
