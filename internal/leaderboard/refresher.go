package leaderboard

import (
	"fmt"
	"time"

	"github.com/MillennialCoin69/Main/internal/platform/database"
	"github.com/MillennialCoin69/Main/internal/platform/metadata"
	"github.com/MillennialCoin69/Main/pkg/lifecycle"
)

// refreshChan 是提交和查询路径向后台刷新器发送"请尽快刷新"信号的通道。
// 容量为1：已有待处理信号时重复请求直接丢弃。
var refreshChan = make(chan struct{}, 1)

// RequestRefresh 请求一次异步的全时段快照刷新。
// 永不阻塞；刷新器未启动时信号会留在通道里或被丢弃。
func RequestRefresh() {
	select {
	case refreshChan <- struct{}{}:
	default:
	}
}

// RefreshSnapshotNow 同步执行一次全时段快照刷新。
// 由刷新器循环、启动预热和停机前的最终刷新共用。
func RefreshSnapshotNow() error {
	entries, err := queryBoard(FilterAllTime)
	if err != nil {
		return fmt.Errorf("无法从存储查询全时段榜单: %w", err)
	}
	if err := snapshotCache.Set(entries); err != nil {
		return err
	}
	if err := metadata.SetLastSnapshotRefresh(database.DB, time.Now().UTC()); err != nil {
		// 元数据只是观测信息，失败不影响刷新本身
		fmt.Printf("警告: 记录快照刷新时间失败: %v\n", err)
	}
	return nil
}

// StartRefresher 启动后台的快照刷新器。
// 它周期性地重建全时段快照，并响应提交/查询路径发来的即时刷新请求。
// 后到的响应覆盖先到的响应（last-response-wins）；
// 在5分钟的缓存视野下这是可接受的既定行为。
func StartRefresher(handle *lifecycle.Handle, interval time.Duration) {
	go func() {
		defer handle.Close()
		fmt.Println("榜单快照刷新器已启动。")

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-handle.Done():
				fmt.Println("榜单快照刷新器已停止。")
				return
			case <-ticker.C:
			case <-refreshChan:
			}

			if err := RefreshSnapshotNow(); err != nil {
				fmt.Printf("警告: 后台快照刷新失败: %v\n", err)
			}
		}
	}()
}
