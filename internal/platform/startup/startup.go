package startup

import (
	"fmt"

	"github.com/MillennialCoin69/Main/internal/leaderboard"
	"github.com/MillennialCoin69/Main/internal/platform/config"
	"github.com/MillennialCoin69/Main/internal/platform/database"
	"github.com/MillennialCoin69/Main/internal/platform/metadata"
	"github.com/MillennialCoin69/Main/internal/user"
	"github.com/MillennialCoin69/Main/internal/window"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication(cfg *config.Config) error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if err := user.PrimeCachedDB(); err != nil {
		return err
	}
	if err := window.PrimeModule(cfg.Desktop); err != nil {
		return err
	}
	if err := leaderboard.PrimeCachedDB(cfg.Leaderboard); err != nil {
		return err
	}

	if last, err := metadata.GetLastSnapshotRefresh(database.DB); err == nil && !last.IsZero() {
		fmt.Printf("上一次榜单快照刷新时间: %s\n", last)
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数。
// Redis重启后，个人最佳缓存和榜单快照都需要从SQLite重新预热。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	err := func() error {
		user.LockRepository()
		defer user.UnlockRepository()
		if err := user.WarmupCache(); err != nil {
			return err
		}
		return leaderboard.WarmupCache()
	}()
	if err != nil {
		return err
	}

	fmt.Println("缓存热重建完成。")
	return nil
}
