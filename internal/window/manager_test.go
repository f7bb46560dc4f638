package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAssignsIncreasingStackOrder(t *testing.T) {
	d := newDesktop(1000)

	d.Open("game-center", "game-center", "Game Center")
	d.Open("mtv-player", "mtv-player", "MTV Player")

	records := d.ListOpen()
	require.Len(t, records, 2)
	assert.Equal(t, "game-center", records[0].ID)
	assert.Equal(t, int64(1000), records[0].StackOrder)
	assert.Equal(t, "mtv-player", records[1].ID)
	assert.Equal(t, int64(1001), records[1].StackOrder)
}

func TestOpenExistingRestoresInsteadOfDuplicating(t *testing.T) {
	d := newDesktop(1000)

	d.Open("game-center", "game-center", "Game Center")
	d.Open("mtv-player", "mtv-player", "MTV Player")
	d.Minimize("game-center")

	// 重复打开：不产生副本，取消最小化并置于最前，Kind/Title不被覆盖
	d.Open("game-center", "other-kind", "Other Title")

	records := d.ListOpen()
	require.Len(t, records, 2)

	front, ok := d.Frontmost()
	require.True(t, ok)
	assert.Equal(t, "game-center", front.ID)
	assert.Equal(t, "game-center", front.Kind)
	assert.Equal(t, "Game Center", front.Title)
	assert.False(t, front.Minimized)
	assert.Greater(t, front.StackOrder, records[0].StackOrder)
}

func TestFrontmostSkipsMinimizedWindows(t *testing.T) {
	d := newDesktop(1000)

	d.Open("a", "a", "A")
	d.Open("b", "b", "B")

	front, ok := d.Frontmost()
	require.True(t, ok)
	assert.Equal(t, "b", front.ID)

	// 最前窗口被最小化后，最前位置回落到下一个未最小化窗口
	d.Minimize("b")
	front, ok = d.Frontmost()
	require.True(t, ok)
	assert.Equal(t, "a", front.ID)

	d.Minimize("a")
	_, ok = d.Frontmost()
	assert.False(t, ok)
}

func TestMinimizeKeepsStackOrder(t *testing.T) {
	d := newDesktop(1000)

	d.Open("a", "a", "A")
	before := d.ListOpen()[0].StackOrder

	d.Minimize("a")
	after := d.ListOpen()[0]
	assert.True(t, after.Minimized)
	assert.Equal(t, before, after.StackOrder)
}

func TestRestoreBringsWindowToFrontWithNewOrder(t *testing.T) {
	d := newDesktop(1000)

	d.Open("a", "a", "A")
	d.Open("b", "b", "B")
	d.Minimize("a")
	orderBefore := d.ListOpen()[0].StackOrder

	d.Restore("a")

	front, ok := d.Frontmost()
	require.True(t, ok)
	assert.Equal(t, "a", front.ID)
	assert.False(t, front.Minimized)
	assert.Greater(t, front.StackOrder, orderBefore)
}

func TestRestoreOnVisibleWindowIsSafeBringToFront(t *testing.T) {
	d := newDesktop(1000)

	d.Open("a", "a", "A")
	d.Open("b", "b", "B")

	// 任务栏按钮对未最小化的窗口也会调用Restore
	d.Restore("a")

	front, ok := d.Frontmost()
	require.True(t, ok)
	assert.Equal(t, "a", front.ID)
}

func TestCloseIsIdempotent(t *testing.T) {
	d := newDesktop(1000)

	d.Open("a", "a", "A")
	d.Close("a")
	assert.Empty(t, d.ListOpen())

	// 对已关闭和从未打开的ID再次Close不应panic或报错
	d.Close("a")
	d.Close("never-opened")
	assert.Empty(t, d.ListOpen())
}

func TestOperationsOnUnknownIDAreNoOps(t *testing.T) {
	d := newDesktop(1000)

	d.Minimize("ghost")
	d.Restore("ghost")
	assert.Empty(t, d.ListOpen())
}

func TestReopenAfterCloseStartsFresh(t *testing.T) {
	d := newDesktop(1000)

	d.Open("a", "a", "A")
	d.Minimize("a")
	d.Close("a")
	d.Open("a", "a", "A")

	records := d.ListOpen()
	require.Len(t, records, 1)
	assert.False(t, records[0].Minimized)
	// 计数器只增不减：重开后的序号高于之前所有序号
	assert.Equal(t, int64(1001), records[0].StackOrder)
}

func TestToggleStartMenu(t *testing.T) {
	d := newDesktop(1000)

	assert.False(t, d.StartMenuOpen())
	assert.True(t, d.ToggleStartMenu())
	assert.True(t, d.StartMenuOpen())
	assert.False(t, d.ToggleStartMenu())
	assert.False(t, d.StartMenuOpen())
}

func TestManagerSessionsAreIsolated(t *testing.T) {
	m := NewManager(1000, 30*time.Minute)

	alice := m.Session("alice")
	bob := m.Session("bob")
	require.NotSame(t, alice, bob)

	alice.Open("game-center", "game-center", "Game Center")

	assert.Len(t, alice.ListOpen(), 1)
	assert.Empty(t, bob.ListOpen())
	assert.Equal(t, 2, m.SessionCount())

	// 同一用户再次获取会话，拿到的是同一个桌面
	assert.Same(t, alice, m.Session("alice"))
}

func TestSweepIdleRemovesOnlyExpiredSessions(t *testing.T) {
	m := NewManager(1000, 30*time.Minute)

	stale := m.Session("stale")
	m.Session("fresh").Open("a", "a", "A")

	stale.mu.Lock()
	stale.lastActive = time.Now().Add(-time.Hour)
	stale.mu.Unlock()

	removed := m.sweepIdle()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.SessionCount())

	// 被回收的会话在下次访问时重新从空桌面开始
	assert.Empty(t, m.Session("stale").ListOpen())
}
