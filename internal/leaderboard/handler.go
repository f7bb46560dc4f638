package leaderboard

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MillennialCoin69/Main/internal/user"
	"github.com/gin-gonic/gin"
)

// --- API请求与响应模型 ---

// SubmitRequestBody 定义了前端提交分数时，请求体的JSON结构
type SubmitRequestBody struct {
	PlayerName string `json:"playerName" binding:"required"`
	Score      int    `json:"score" binding:"required"`
}

// EntryResponse 是单条榜单记录的API响应模型
type EntryResponse struct {
	ID         uint      `json:"id"`
	PlayerName string    `json:"playerName"`
	Score      int       `json:"score"`
	Timestamp  time.Time `json:"timestamp"`
	GameDate   string    `json:"gameDate"`
}

// BoardResponse 是榜单查询的API响应模型
type BoardResponse struct {
	Filter  string          `json:"filter"`
	Entries []EntryResponse `json:"entries"`
	Stale   bool            `json:"stale"`
}

// SubmitResponse 是提交分数的API响应模型
type SubmitResponse struct {
	Success        bool `json:"success"`
	IsPersonalBest bool `json:"isPersonalBest"`
}

// formatEntries 将服务层DTO格式化为API响应
func formatEntries(dtos []EntryDTO) []EntryResponse {
	responses := make([]EntryResponse, len(dtos))
	for i, dto := range dtos {
		responses[i] = EntryResponse(dto)
	}
	return responses
}

// --- 控制器函数 ---

// GetLeaderboard 按filter查询榜单
func GetLeaderboard(c *gin.Context) {
	filter, ok := ParseFilter(c.DefaultQuery("filter", string(FilterAllTime)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter must be one of all-time, daily, weekly"})
		return
	}

	board, err := FetchLeaderboard(filter)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch leaderboard. Check your internet connection."})
		return
	}

	c.JSON(http.StatusOK, BoardResponse{
		Filter:  string(filter),
		Entries: formatEntries(board.Entries),
		Stale:   board.Stale,
	})
}

// SubmitScoreHandler 处理前端提交的分数
func SubmitScoreHandler(c *gin.Context) {
	var body SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	userID := c.GetString(user.UserIDKey)
	result, err := SubmitScore(userID, body.PlayerName, body.Score)
	if err != nil {
		if IsValidationError(err) {
			// 校验失败是玩家可修正的输入问题，原样返回原因
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to submit score. Please try again."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "提交分数时发生内部错误"})
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{
		Success:        true,
		IsPersonalBest: result.IsPersonalBest,
	})
}

// CheckHighScore 判断给定分数能否进入前十
func CheckHighScore(c *gin.Context) {
	score, err := strconv.Atoi(c.Query("score"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must be an integer"})
		return
	}

	userID := c.GetString(user.UserIDKey)
	c.JSON(http.StatusOK, gin.H{"highScore": CheckIfHighScore(userID, score)})
}

// GetRank 计算给定分数在全时段榜单中的名次
func GetRank(c *gin.Context) {
	score, err := strconv.Atoi(c.Query("score"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must be an integer"})
		return
	}

	rank, err := GetPlayerRank(score)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch leaderboard. Check your internet connection."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rank": rank})
}

// GetPersonalBest 返回当前玩家的个人最佳分数
func GetPersonalBest(c *gin.Context) {
	userID := c.GetString(user.UserIDKey)
	best, err := user.GetPersonalBest(userID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch personal best. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"personalBest": best})
}
