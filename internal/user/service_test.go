package user

import (
	"testing"

	"github.com/MillennialCoin69/Main/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	database.DB = db
	database.RDB = nil
}

func TestCreateProvisionalUser(t *testing.T) {
	id, err := CreateProvisionalUser()
	require.NoError(t, err)
	assert.True(t, IsValidUUID(id))

	// 每次生成的UUID都不同
	other, err := CreateProvisionalUser()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("018f4e1c-0000-7000-8000-000000000000"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestPersonalBestIsMonotonic(t *testing.T) {
	setupTestDB(t)

	improved, err := UpdatePersonalBest("user-a", 120)
	require.NoError(t, err)
	assert.True(t, improved)

	// 更低的分数不会覆盖已有的个人最佳
	improved, err = UpdatePersonalBest("user-a", 90)
	require.NoError(t, err)
	assert.False(t, improved)

	best, err := GetPersonalBest("user-a")
	require.NoError(t, err)
	assert.Equal(t, 120, best)

	improved, err = UpdatePersonalBest("user-a", 200)
	require.NoError(t, err)
	assert.True(t, improved)

	best, err = GetPersonalBest("user-a")
	require.NoError(t, err)
	assert.Equal(t, 200, best)
}

func TestPersonalBestEqualScoreIsNotImprovement(t *testing.T) {
	setupTestDB(t)

	_, err := UpdatePersonalBest("user-a", 120)
	require.NoError(t, err)

	improved, err := UpdatePersonalBest("user-a", 120)
	require.NoError(t, err)
	assert.False(t, improved)
}

func TestPersonalBestUnknownUserIsZero(t *testing.T) {
	setupTestDB(t)

	best, err := GetPersonalBest("never-seen")
	require.NoError(t, err)
	assert.Zero(t, best)
}

func TestPersonalBestEmptyUserIDIsNoOp(t *testing.T) {
	setupTestDB(t)

	best, err := GetPersonalBest("")
	require.NoError(t, err)
	assert.Zero(t, best)

	improved, err := UpdatePersonalBest("", 120)
	require.NoError(t, err)
	assert.False(t, improved)

	var count int64
	require.NoError(t, database.DB.Model(&User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPersonalBestsAreIsolatedPerUser(t *testing.T) {
	setupTestDB(t)

	_, err := UpdatePersonalBest("user-a", 120)
	require.NoError(t, err)
	_, err = UpdatePersonalBest("user-b", 300)
	require.NoError(t, err)

	bestA, err := GetPersonalBest("user-a")
	require.NoError(t, err)
	assert.Equal(t, 120, bestA)

	bestB, err := GetPersonalBest("user-b")
	require.NoError(t, err)
	assert.Equal(t, 300, bestB)
}
