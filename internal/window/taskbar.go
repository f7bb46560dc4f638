package window

import "sort"

// TaskbarButton 是任务栏上一个窗口按钮的投影。
// Active 对应"按下"的视觉状态（窗口未最小化时为真）；
// 点击按钮无论当前状态如何都应调用Restore——对已激活窗口
// 这是一次安全的幂等置前。
type TaskbarButton struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// TaskbarView 是任务栏的完整只读视图。
type TaskbarView struct {
	Buttons       []TaskbarButton `json:"buttons"`
	StartMenuOpen bool            `json:"startMenuOpen"`
}

// Taskbar 从窗口集合投影出任务栏视图。
// 按钮按稳定的ID排序，与插入顺序无关，保证窗口置前/最小化
// 不会让按钮在任务栏上跳动。
func (d *Desktop) Taskbar() TaskbarView {
	d.mu.Lock()
	defer d.mu.Unlock()

	buttons := make([]TaskbarButton, 0, len(d.windows))
	for _, w := range d.windows {
		buttons = append(buttons, TaskbarButton{
			ID:     w.ID,
			Title:  w.Title,
			Active: !w.Minimized,
		})
	}
	sort.Slice(buttons, func(i, j int) bool {
		return buttons[i].ID < buttons[j].ID
	})

	return TaskbarView{
		Buttons:       buttons,
		StartMenuOpen: d.startMenuOpen,
	}
}
