package window

import (
	"net/http"

	"github.com/MillennialCoin69/Main/internal/user"
	"github.com/gin-gonic/gin"
)

// globalManager 是由setup装配的桌面会话管理器单例
var globalManager *Manager

// --- API请求与响应模型 ---

// OpenRequestBody 定义了打开面板时请求体的JSON结构。
// Kind和Title可省略，此时从面板目录取默认值。
type OpenRequestBody struct {
	ID    string `json:"id" binding:"required"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

// PanelResponse 是面板启动器目录的API响应模型
type PanelResponse struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Dock  string `json:"dock"`
	PosX  int    `json:"posX"`
	PosY  int    `json:"posY"`
}

// WindowsResponse 是窗口列表的API响应模型。
// Windows按堆叠序号从低到高排序；Frontmost是应渲染在最前的窗口ID。
type WindowsResponse struct {
	Windows   []WindowRecord `json:"windows"`
	Frontmost string         `json:"frontmost,omitempty"`
}

// sessionDesktop 从Gin上下文取出当前玩家的桌面
func sessionDesktop(c *gin.Context) *Desktop {
	return globalManager.Session(c.GetString(user.UserIDKey))
}

// --- 控制器函数 ---

// ListPanels 返回面板启动器目录（桌面图标列表）
func ListPanels(c *gin.Context) {
	ids := ListPanelIDs()
	responses := make([]PanelResponse, 0, len(ids))
	for _, id := range ids {
		info, ok := GetPanelInfoByID(id)
		if !ok {
			continue
		}
		responses = append(responses, PanelResponse{
			ID:    id,
			Kind:  info.Kind,
			Title: info.Title,
			Icon:  info.Icon,
			Dock:  info.Dock,
			PosX:  info.PosX,
			PosY:  info.PosY,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// ListWindows 返回当前会话的窗口快照
func ListWindows(c *gin.Context) {
	desktop := sessionDesktop(c)

	response := WindowsResponse{Windows: desktop.ListOpen()}
	if front, ok := desktop.Frontmost(); ok {
		response.Frontmost = front.ID
	}
	c.JSON(http.StatusOK, response)
}

// OpenWindow 打开（或恢复并置前）一个面板
func OpenWindow(c *gin.Context) {
	var body OpenRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	kind, title := body.Kind, body.Title
	if info, ok := GetPanelInfoByID(body.ID); ok {
		if kind == "" {
			kind = info.Kind
		}
		if title == "" {
			title = info.Title
		}
	}
	if kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown panel: " + body.ID})
		return
	}
	if title == "" {
		title = body.ID
	}

	sessionDesktop(c).Open(body.ID, kind, title)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// CloseWindow 关闭一个窗口（幂等）
func CloseWindow(c *gin.Context) {
	sessionDesktop(c).Close(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// MinimizeWindow 最小化一个窗口（幂等）
func MinimizeWindow(c *gin.Context) {
	sessionDesktop(c).Minimize(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// RestoreWindow 恢复并置前一个窗口（幂等）
func RestoreWindow(c *gin.Context) {
	sessionDesktop(c).Restore(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// GetTaskbar 返回任务栏投影
func GetTaskbar(c *gin.Context) {
	c.JSON(http.StatusOK, sessionDesktop(c).Taskbar())
}

// ToggleStartMenu 翻转开始菜单的开合状态
func ToggleStartMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"startMenuOpen": sessionDesktop(c).ToggleStartMenu()})
}
