package window

import (
	"fmt"

	"github.com/MillennialCoin69/Main/internal/platform/database"
)

// --- In-memory Registry ---

// registry 是面板启动器目录的中央数据仓库。
// 静态数据在启动时从SQLite整体加载，此后只读，因此访问无需加锁。
type registry struct {
	idToIndex   map[string]int
	indexToInfo []PanelInfo
	indexToID   []string
}

// globalRegistry 是仓库的私有单例实例
var globalRegistry *registry

// defaultPanels 是面板目录的内置种子数据。
// panels表为空时（全新部署）用它初始化；
// 正式数据由 GOscripts/buildDB 从前端桌面导出页生成。
var defaultPanels = []Panel{
	{PanelID: "millennial-coin", Kind: "millennial-coin", Title: "Millennial Coin", Icon: "assets/icons/millennial-coin.jpg", Dock: "left", PosX: 20, PosY: 20},
	{PanelID: "home", Kind: "home", Title: "Home", Icon: "assets/icons/home.svg", Dock: "left", PosX: 20, PosY: 120},
	{PanelID: "x", Kind: "x", Title: "X (Twitter)", Icon: "assets/icons/x.svg", Dock: "left", PosX: 20, PosY: 220},
	{PanelID: "community", Kind: "community", Title: "Community", Icon: "assets/icons/community.svg", Dock: "left", PosX: 20, PosY: 320},
	{PanelID: "dexscreener", Kind: "dexscreener", Title: "DexScreener", Icon: "assets/icons/dexscreener.svg", Dock: "left", PosX: 20, PosY: 420},
	{PanelID: "dextools", Kind: "dextools", Title: "DexTools", Icon: "assets/icons/dextools.svg", Dock: "left", PosX: 20, PosY: 520},
	{PanelID: "meme-center", Kind: "meme-center", Title: "Meme Center", Icon: "assets/icons/bad-luck-brian.webp", Dock: "right", PosX: 20, PosY: 20},
	{PanelID: "toy-box", Kind: "toy-box", Title: "Toy Box", Icon: "assets/icons/tamagotchi.png", Dock: "right", PosX: 20, PosY: 120},
	{PanelID: "mtv-player", Kind: "mtv-player", Title: "MTV Player", Icon: "assets/icons/mtv.png", Dock: "right", PosX: 20, PosY: 220},
	{PanelID: "game-center", Kind: "game-center", Title: "Game Center", Icon: "assets/icons/retro-game.webp", Dock: "right", PosX: 20, PosY: 320},
}

// seedDefaultPanels 在panels表为空时写入内置种子数据
func seedDefaultPanels() error {
	var count int64
	if err := database.DB.Model(&Panel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("无法统计panels表: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := database.DB.Create(&defaultPanels).Error; err != nil {
		return fmt.Errorf("无法写入内置面板目录: %w", err)
	}
	fmt.Printf("panels表为空，已写入 %d 个内置面板。\n", len(defaultPanels))
	return nil
}

// InitializeRegistry 从SQLite加载面板静态数据，初始化内存仓库。
// 这个函数应该在应用启动时且仅调用一次。
func InitializeRegistry() error {
	if err := seedDefaultPanels(); err != nil {
		return err
	}

	var panelsFromDB []Panel
	if err := database.DB.Order("id asc").Find(&panelsFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载面板静态数据: %w", err)
	}

	size := len(panelsFromDB)
	if size == 0 {
		return fmt.Errorf("面板静态数据为空，无法初始化仓库")
	}

	globalRegistry = &registry{
		idToIndex:   make(map[string]int, size),
		indexToInfo: make([]PanelInfo, size),
		indexToID:   make([]string, size),
	}

	for i, p := range panelsFromDB {
		globalRegistry.idToIndex[p.PanelID] = i
		globalRegistry.indexToID[i] = p.PanelID
		globalRegistry.indexToInfo[i] = PanelInfo{
			Kind:  p.Kind,
			Title: p.Title,
			Icon:  p.Icon,
			Dock:  p.Dock,
			PosX:  p.PosX,
			PosY:  p.PosY,
		}
	}

	fmt.Printf("面板目录 (Registry) 初始化成功，加载了 %d 个面板。\n", size)
	return nil
}

// --- Public Methods for Data Access ---
// 这些方法是线程安全的，因为它们访问的是启动后只读的数据。

// GetPanelCount 返回目录中的面板数量。
func GetPanelCount() int {
	if globalRegistry == nil {
		return 0
	}
	return len(globalRegistry.indexToInfo)
}

// GetPanelInfoByID 按面板ID查找静态数据。
func GetPanelInfoByID(id string) (PanelInfo, bool) {
	if globalRegistry == nil {
		return PanelInfo{}, false
	}
	index, ok := globalRegistry.idToIndex[id]
	if !ok {
		return PanelInfo{}, false
	}
	return globalRegistry.indexToInfo[index], true
}

// ListPanelIDs 按加载顺序返回所有面板ID。
func ListPanelIDs() []string {
	if globalRegistry == nil {
		return nil
	}
	ids := make([]string, len(globalRegistry.indexToID))
	copy(ids, globalRegistry.indexToID)
	return ids
}
