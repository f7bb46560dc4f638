package leaderboard

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MillennialCoin69/Main/internal/platform/database"
	"github.com/MillennialCoin69/Main/internal/user"
	"github.com/MillennialCoin69/Main/pkg/blocklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 为每个测试准备一个独立的内存SQLite数据库。
// Redis保持未初始化状态，个人最佳缓存自动退化为直读SQLite。
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ScoreEntry{}, &user.User{}))

	database.DB = db
	database.RDB = nil
	InitModule(NewMemoryCache(5*time.Minute), blocklist.Default(), 10)
}

// closeStore 关闭底层连接，模拟存储故障
func closeStore(t *testing.T) {
	t.Helper()
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func seedEntry(t *testing.T, name string, score int, ts time.Time) {
	t.Helper()
	entry := ScoreEntry{
		PlayerName: name,
		Score:      score,
		Timestamp:  ts,
		GameDate:   gameDateOf(ts),
	}
	require.NoError(t, database.DB.Create(&entry).Error)
}

func TestValidateSubmission(t *testing.T) {
	matcher := blocklist.NewMatcher([]string{"grognak"})

	tests := []struct {
		name       string
		playerName string
		score      int
		wantName   string
		wantReason string
	}{
		{"valid", "Alice", 150, "Alice", ""},
		{"trims whitespace", "  Alice  ", 150, "Alice", ""},
		{"max score allowed", "Alice", 10000, "Alice", ""},
		{"empty name", "", 150, "", "Player name is required"},
		{"whitespace-only name", "   ", 150, "", "Player name is required"},
		{"name too long", strings.Repeat("a", 21), 150, "", "Name must be 20 characters or less"},
		{"blocked name", "xXgrognakXx", 150, "", "Please choose a different name"},
		{"zero score", "Alice", 0, "", "Invalid score detected"},
		{"negative score", "Alice", -10, "", "Invalid score detected"},
		{"score above cap", "Alice", 10010, "", "Invalid score detected"},
		{"score off the grid", "Alice", 155, "", "Invalid score detected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trimmed, err := validateSubmission(tt.playerName, tt.score, matcher)
			if tt.wantReason == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantName, trimmed)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, tt.wantReason, err.Error())
		})
	}
}

func TestSubmitScorePersistsEntryAndPersonalBest(t *testing.T) {
	setupTestDB(t)

	result, err := SubmitScore("user-bob", "Bob", 120)
	require.NoError(t, err)
	assert.Equal(t, "Bob", result.Entry.PlayerName)
	assert.Equal(t, 120, result.Entry.Score)
	assert.True(t, result.IsPersonalBest)

	// 同一玩家提交更低的分数：记录入榜，但不是个人最佳
	result, err = SubmitScore("user-bob", "Bob", 90)
	require.NoError(t, err)
	assert.False(t, result.IsPersonalBest)

	var count int64
	require.NoError(t, database.DB.Model(&ScoreEntry{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	best, err := user.GetPersonalBest("user-bob")
	require.NoError(t, err)
	assert.Equal(t, 120, best)
}

func TestSubmitScoreRejectionWritesNothing(t *testing.T) {
	setupTestDB(t)

	_, err := SubmitScore("user-bob", "Bob", 155)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	var count int64
	require.NoError(t, database.DB.Model(&ScoreEntry{}).Count(&count).Error)
	assert.Zero(t, count)

	best, err := user.GetPersonalBest("user-bob")
	require.NoError(t, err)
	assert.Zero(t, best)
}

func TestSubmitScoreStoreFailure(t *testing.T) {
	setupTestDB(t)
	closeStore(t)

	_, err := SubmitScore("user-bob", "Bob", 120)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	assert.False(t, IsValidationError(err))
}

func TestFetchLeaderboardAllTimeServesCachedSnapshot(t *testing.T) {
	setupTestDB(t)

	now := time.Now().UTC()
	seedEntry(t, "Bob", 120, now)
	seedEntry(t, "Carol", 90, now)

	board, err := FetchLeaderboard(FilterAllTime)
	require.NoError(t, err)
	require.Len(t, board.Entries, 2)
	assert.False(t, board.Stale)
	assert.Equal(t, "Bob", board.Entries[0].PlayerName)
	assert.Equal(t, "Carol", board.Entries[1].PlayerName)

	// 快照有效期内的后续读取命中缓存，看不到新写入的条目
	seedEntry(t, "Dave", 500, now)
	board, err = FetchLeaderboard(FilterAllTime)
	require.NoError(t, err)
	assert.Len(t, board.Entries, 2)
}

func TestFetchLeaderboardServesStaleSnapshotWhenStoreDown(t *testing.T) {
	setupTestDB(t)

	current := time.Now()
	cache := &memoryCache{ttl: 5 * time.Minute, now: func() time.Time { return current }}
	InitModule(cache, blocklist.Default(), 10)

	seedEntry(t, "Bob", 120, time.Now().UTC())

	board, err := FetchLeaderboard(FilterAllTime)
	require.NoError(t, err)
	require.Len(t, board.Entries, 1)

	// 快照过期、存储又不可用：过期数据仍然好过空白
	current = current.Add(10 * time.Minute)
	closeStore(t)

	board, err = FetchLeaderboard(FilterAllTime)
	require.NoError(t, err)
	assert.True(t, board.Stale)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, "Bob", board.Entries[0].PlayerName)
}

func TestFetchLeaderboardErrorsWithoutAnySnapshot(t *testing.T) {
	setupTestDB(t)
	closeStore(t)

	_, err := FetchLeaderboard(FilterAllTime)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
}

func TestFetchLeaderboardDailyFiltersByGameDate(t *testing.T) {
	setupTestDB(t)

	now := time.Now().UTC()
	seedEntry(t, "Today1", 100, now)
	seedEntry(t, "Today2", 300, now)
	seedEntry(t, "Yesterday", 900, now.AddDate(0, 0, -1))

	board, err := FetchLeaderboard(FilterDaily)
	require.NoError(t, err)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "Today2", board.Entries[0].PlayerName)
	assert.Equal(t, "Today1", board.Entries[1].PlayerName)
}

func TestFetchLeaderboardWeeklyOrdersByTimestampFirst(t *testing.T) {
	setupTestDB(t)

	now := time.Now().UTC()
	seedEntry(t, "Recent", 100, now.Add(-1*time.Hour))
	seedEntry(t, "Older", 500, now.Add(-48*time.Hour))
	seedEntry(t, "TooOld", 900, now.AddDate(0, 0, -10))

	board, err := FetchLeaderboard(FilterWeekly)
	require.NoError(t, err)
	require.Len(t, board.Entries, 2)
	// 周榜先按时间再按分数：更新的低分排在更旧的高分前面
	assert.Equal(t, "Recent", board.Entries[0].PlayerName)
	assert.Equal(t, "Older", board.Entries[1].PlayerName)
}

func TestGetPlayerRank(t *testing.T) {
	setupTestDB(t)

	now := time.Now().UTC()
	seedEntry(t, "A", 300, now)
	seedEntry(t, "B", 200, now)
	seedEntry(t, "C", 100, now)

	tests := []struct {
		score int
		want  int
	}{
		{400, 1},
		{250, 2},
		{200, 3}, // 同分排在已有条目之后
		{100, 4},
		{50, 4},
	}
	for _, tt := range tests {
		rank, err := GetPlayerRank(tt.score)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rank, "score %d", tt.score)
	}
}

func TestGetPlayerRankEmptyBoard(t *testing.T) {
	setupTestDB(t)

	rank, err := GetPlayerRank(100)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
}

func TestCheckIfHighScore(t *testing.T) {
	setupTestDB(t)
	InitModule(NewMemoryCache(5*time.Minute), blocklist.Default(), 3)

	// 榜单未填满时任何分数都算高分
	assert.True(t, CheckIfHighScore("user-a", 10))

	now := time.Now().UTC()
	seedEntry(t, "A", 300, now)
	seedEntry(t, "B", 200, now)
	seedEntry(t, "C", 100, now)

	assert.True(t, CheckIfHighScore("user-a", 150))
	assert.False(t, CheckIfHighScore("user-a", 100)) // 打平末位不算入榜
	assert.False(t, CheckIfHighScore("user-a", 90))

	// 无论判定结果如何，个人最佳都已被更新
	best, err := user.GetPersonalBest("user-a")
	require.NoError(t, err)
	assert.Equal(t, 150, best)
}

func TestCheckIfHighScoreFallsBackWhenStoreDown(t *testing.T) {
	setupTestDB(t)
	closeStore(t)

	assert.True(t, CheckIfHighScore("user-a", 60))
	assert.True(t, CheckIfHighScore("user-a", 50))
	assert.False(t, CheckIfHighScore("user-a", 40))
}
