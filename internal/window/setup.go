package window

import (
	"fmt"

	"github.com/MillennialCoin69/Main/internal/platform/config"
	"github.com/MillennialCoin69/Main/internal/platform/database"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Panel{}); err != nil {
		return fmt.Errorf("无法迁移panels表: %w", err)
	}
	fmt.Println("Panel数据库表迁移成功。")
	return nil
}

// PrimeModule 是window模块的初始化总入口。
// 它迁移面板目录表、加载内存仓库并装配会话管理器。
func PrimeModule(cfg config.DesktopConfig) error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := InitializeRegistry(); err != nil {
		return err
	}
	globalManager = NewManager(cfg.BaseZIndex, cfg.SessionIdleTimeout())
	fmt.Println("桌面会话管理器初始化成功。")
	return nil
}

// ManagerInstance 返回全局的桌面会话管理器。
// 供main在启动清扫器时使用。
func ManagerInstance() *Manager {
	return globalManager
}
