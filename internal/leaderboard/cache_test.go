package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheExpiry(t *testing.T) {
	current := time.Now()
	c := &memoryCache{ttl: 5 * time.Minute, now: func() time.Time { return current }}

	// 空缓存：两条读取路径都返回nil
	snap, err := c.Get()
	require.NoError(t, err)
	assert.Nil(t, snap)
	snap, err = c.GetStale()
	require.NoError(t, err)
	assert.Nil(t, snap)

	entries := []EntryDTO{{ID: 1, PlayerName: "Bob", Score: 120}}
	require.NoError(t, c.Set(entries))

	snap, err = c.Get()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, entries, snap.Entries)
	assert.Equal(t, current.Add(5*time.Minute), snap.ExpiresAt)

	// 刚好到达过期时刻：快照立即失效
	current = current.Add(5 * time.Minute)
	snap, err = c.Get()
	require.NoError(t, err)
	assert.Nil(t, snap)

	// 过期快照仍可通过降级路径读到
	snap, err = c.GetStale()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, entries, snap.Entries)
}

func TestMemoryCacheSetReplacesSnapshot(t *testing.T) {
	current := time.Now()
	c := &memoryCache{ttl: 5 * time.Minute, now: func() time.Time { return current }}

	require.NoError(t, c.Set([]EntryDTO{{ID: 1, PlayerName: "Bob", Score: 120}}))
	current = current.Add(3 * time.Minute)
	require.NoError(t, c.Set([]EntryDTO{{ID: 2, PlayerName: "Carol", Score: 300}}))

	snap, err := c.Get()
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, "Carol", snap.Entries[0].PlayerName)
	// 过期时间随新写入整体后移
	assert.Equal(t, current.Add(5*time.Minute), snap.ExpiresAt)
}
