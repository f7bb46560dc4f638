package window

import "gorm.io/gorm"

// WindowRecord 是桌面对一个已打开内容面板的簿记条目。
// 面板内容本身（游戏、内嵌页面、播放器）对本模块是不透明的，
// 只通过Kind标签交给前端选择渲染组件。
type WindowRecord struct {
	// ID 是面板的稳定标识；同一ID重复打开时恢复已有窗口，不会产生副本
	ID string `json:"id"`

	// Kind 是不透明的内容类型标签
	Kind string `json:"kind"`

	// Title 是窗口标题栏和任务栏按钮的显示文本
	Title string `json:"title"`

	// Minimized 为true时窗口不渲染，但保留堆叠序号以备恢复
	Minimized bool `json:"minimized"`

	// StackOrder 是单调递增的堆叠序号；越大越靠前
	StackOrder int64 `json:"stackOrder"`
}

// Panel 定义了面板启动器在SQLite中的持久化模型。
// 它是桌面图标目录的静态数据来源，启动时整体加载进内存。
type Panel struct {
	gorm.Model

	// PanelID 是面板的唯一字符串ID，例如 "game-center"
	PanelID string `gorm:"uniqueIndex;not null" json:"id"`

	// Kind 是面板的内容类型标签
	Kind string `json:"kind"`

	// Title 是启动器和窗口的默认标题
	Title string `json:"title"`

	// Icon 是指向桌面图标的相对路径
	Icon string `json:"icon"`

	// Dock 标记图标停靠在桌面的哪一侧 ("left" / "right")
	Dock string `json:"dock"`

	// PosX / PosY 是图标在停靠列中的像素位置
	PosX int `json:"posX"`
	PosY int `json:"posY"`
}

// PanelInfo 持有面板的静态数据，在程序启动时加载到内存中
type PanelInfo struct {
	Kind  string
	Title string
	Icon  string
	Dock  string
	PosX  int
	PosY  int
}
