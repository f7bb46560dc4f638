package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskbarButtonsSortedByID(t *testing.T) {
	d := newDesktop(1000)

	d.Open("zz-last", "zz-last", "ZZ")
	d.Open("aa-first", "aa-first", "AA")
	d.Open("mm-middle", "mm-middle", "MM")

	view := d.Taskbar()
	require.Len(t, view.Buttons, 3)
	// 按ID排序，与打开顺序和置前操作无关
	assert.Equal(t, "aa-first", view.Buttons[0].ID)
	assert.Equal(t, "mm-middle", view.Buttons[1].ID)
	assert.Equal(t, "zz-last", view.Buttons[2].ID)
}

func TestTaskbarActiveTracksMinimizedState(t *testing.T) {
	d := newDesktop(1000)

	d.Open("a", "a", "A")
	d.Open("b", "b", "B")
	d.Minimize("a")

	view := d.Taskbar()
	require.Len(t, view.Buttons, 2)
	assert.False(t, view.Buttons[0].Active)
	assert.True(t, view.Buttons[1].Active)

	d.Restore("a")
	view = d.Taskbar()
	assert.True(t, view.Buttons[0].Active)
}

func TestTaskbarReflectsStartMenuState(t *testing.T) {
	d := newDesktop(1000)

	assert.False(t, d.Taskbar().StartMenuOpen)
	d.ToggleStartMenu()
	assert.True(t, d.Taskbar().StartMenuOpen)
}

func TestTaskbarOmitsClosedWindows(t *testing.T) {
	d := newDesktop(1000)

	d.Open("a", "a", "A")
	d.Open("b", "b", "B")
	d.Close("a")

	view := d.Taskbar()
	require.Len(t, view.Buttons, 1)
	assert.Equal(t, "b", view.Buttons[0].ID)
}
