package window

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MillennialCoin69/Main/pkg/lifecycle"
)

// sweepInterval 是会话清扫器的运行周期
const sweepInterval = 1 * time.Minute

// Desktop 是单个玩家会话的窗口管理器。
// 它持有窗口集合、堆叠序号计数器和开始菜单的瞬态状态。
// 所有操作都是纯内存的状态迁移，不会失败；
// 对未知ID的操作静默忽略（UI竞态下的重复点击不应报错）。
type Desktop struct {
	mu            sync.Mutex
	windows       map[string]*WindowRecord
	nextOrder     int64
	startMenuOpen bool
	lastActive    time.Time
	now           func() time.Time
}

// newDesktop 创建一个空桌面。堆叠序号从baseOrder起步，
// 保证所有窗口位于桌面背景之上、系统级弹层之下。
func newDesktop(baseOrder int64) *Desktop {
	d := &Desktop{
		windows:   make(map[string]*WindowRecord),
		nextOrder: baseOrder,
		now:       time.Now,
	}
	d.lastActive = d.now()
	return d
}

// takeOrder 取出下一个堆叠序号。调用方必须持有d.mu。
// 计数器只增不减，会话生命周期内不做压缩。
func (d *Desktop) takeOrder() int64 {
	order := d.nextOrder
	d.nextOrder++
	return order
}

// touch 刷新会话的活跃时间。调用方必须持有d.mu。
func (d *Desktop) touch() {
	d.lastActive = d.now()
}

// Open 打开一个面板。
// ID已存在时：取消最小化并置于最前（Kind/Title保持不变）；
// 不存在时：以新的最大堆叠序号创建记录。
func (d *Desktop) Open(id, kind, title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()

	if w, ok := d.windows[id]; ok {
		w.Minimized = false
		w.StackOrder = d.takeOrder()
		return
	}

	d.windows[id] = &WindowRecord{
		ID:         id,
		Kind:       kind,
		Title:      title,
		Minimized:  false,
		StackOrder: d.takeOrder(),
	}
}

// Close 无条件移除窗口记录。ID不存在时是无操作（幂等）。
func (d *Desktop) Close(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	delete(d.windows, id)
}

// Minimize 将窗口标记为最小化；不改变堆叠序号。ID不存在时是无操作。
func (d *Desktop) Minimize(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	if w, ok := d.windows[id]; ok {
		w.Minimized = true
	}
}

// Restore 取消最小化并将窗口置于最前。ID不存在时是无操作。
// 对未最小化的窗口调用等价于置前，因此任务栏按钮可以无条件调用它。
func (d *Desktop) Restore(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	if w, ok := d.windows[id]; ok {
		w.Minimized = false
		w.StackOrder = d.takeOrder()
	}
}

// ListOpen 返回窗口集合的只读快照，按堆叠序号从低到高排序。
func (d *Desktop) ListOpen() []WindowRecord {
	d.mu.Lock()
	defer d.mu.Unlock()

	records := make([]WindowRecord, 0, len(d.windows))
	for _, w := range d.windows {
		records = append(records, *w)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].StackOrder < records[j].StackOrder
	})
	return records
}

// Frontmost 返回当前应渲染在最前的窗口。
// 最前窗口是派生值而不是存储值：未最小化记录中堆叠序号最大者。
// 没有可渲染窗口时第二个返回值为false。
func (d *Desktop) Frontmost() (WindowRecord, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var front *WindowRecord
	for _, w := range d.windows {
		if w.Minimized {
			continue
		}
		if front == nil || w.StackOrder > front.StackOrder {
			front = w
		}
	}
	if front == nil {
		return WindowRecord{}, false
	}
	return *front, true
}

// ToggleStartMenu 翻转开始菜单的开合状态并返回新状态。
// 这是投影层的瞬态UI状态，与窗口集合无关。
func (d *Desktop) ToggleStartMenu() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	d.startMenuOpen = !d.startMenuOpen
	return d.startMenuOpen
}

// StartMenuOpen 返回开始菜单当前的开合状态。
func (d *Desktop) StartMenuOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.startMenuOpen
}

// idleSince 返回会话最后一次活跃的时间。
func (d *Desktop) idleSince() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastActive
}

// Manager 持有所有玩家会话的桌面。
// 会话在第一次桌面操作时惰性创建，空闲超时后被后台清扫器回收。
// 窗口布局刻意不做持久化：刷新页面即回到空桌面。
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Desktop
	baseOrder   int64
	idleTimeout time.Duration
}

// NewManager 创建桌面会话管理器。
func NewManager(baseOrder int64, idleTimeout time.Duration) *Manager {
	return &Manager{
		sessions:    make(map[string]*Desktop),
		baseOrder:   baseOrder,
		idleTimeout: idleTimeout,
	}
}

// Session 返回指定玩家的桌面，不存在时创建一个空桌面。
func (m *Manager) Session(userID string) *Desktop {
	m.mu.RLock()
	d, ok := m.sessions[userID]
	m.mu.RUnlock()
	if ok {
		return d
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// 双重检查：可能有并发请求已经建好了会话
	if d, ok := m.sessions[userID]; ok {
		return d
	}
	d = newDesktop(m.baseOrder)
	m.sessions[userID] = d
	return d
}

// SessionCount 返回当前活跃的会话数。
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// sweepIdle 回收空闲超时的会话，返回回收数量。
func (m *Manager) sweepIdle() int {
	deadline := time.Now().Add(-m.idleTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, d := range m.sessions {
		if d.idleSince().Before(deadline) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper 启动后台的会话清扫器。
func (m *Manager) StartSweeper(handle *lifecycle.Handle) {
	go func() {
		defer handle.Close()
		fmt.Println("桌面会话清扫器已启动。")

		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-handle.Done():
				fmt.Println("桌面会话清扫器已停止。")
				return
			case <-ticker.C:
				if removed := m.sweepIdle(); removed > 0 {
					fmt.Printf("已回收 %d 个空闲桌面会话。\n", removed)
				}
			}
		}
	}()
}
