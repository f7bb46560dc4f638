package leaderboard

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MillennialCoin69/Main/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// --- Redis 键名常量 ---

const (
	// SnapshotKey 是一个 Redis String 的键，存储全时段榜单快照的JSON序列化。
	// 快照自带过期时间戳，因此刻意不设置Redis TTL：
	// 过期的快照仍保留在Redis中，供存储故障时的降级读取使用。
	SnapshotKey = "leaderboard:snapshot"
)

// Snapshot 是最近一次成功的全时段榜单抓取结果。
// ExpiresAt 之后快照即视为过期，只能作为降级数据使用。
type Snapshot struct {
	Entries   []EntryDTO `json:"entries"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// Cache 定义了榜单快照缓存的契约。
// Get 只返回未过期的快照；GetStale 无视过期时间返回最近的快照；
// Set 整体替换快照并盖上新的过期时间戳。
// 只有全时段查询路径使用缓存；daily/weekly查询始终直达存储。
type Cache interface {
	Get() (*Snapshot, error)
	GetStale() (*Snapshot, error)
	Set(entries []EntryDTO) error
}

// --- Redis 实现 ---

// redisCache 把快照存储在Redis中，与个人最佳缓存共用同一个实例。
// 单写者（后台刷新器），last-write-wins。
type redisCache struct {
	key string
	ttl time.Duration
	now func() time.Time
}

// NewRedisCache 创建基于Redis的快照缓存。
func NewRedisCache(ttl time.Duration) Cache {
	return &redisCache{key: SnapshotKey, ttl: ttl, now: time.Now}
}

func (c *redisCache) load() (*Snapshot, error) {
	data, err := database.RDB.Get(database.Ctx, c.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取榜单快照: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("无法解析榜单快照: %w", err)
	}
	return &snap, nil
}

func (c *redisCache) Get() (*Snapshot, error) {
	snap, err := c.load()
	if err != nil || snap == nil {
		return nil, err
	}
	if !c.now().Before(snap.ExpiresAt) {
		// 过期快照不主动清除，留给GetStale的降级路径
		return nil, nil
	}
	return snap, nil
}

func (c *redisCache) GetStale() (*Snapshot, error) {
	return c.load()
}

func (c *redisCache) Set(entries []EntryDTO) error {
	snap := Snapshot{
		Entries:   entries,
		ExpiresAt: c.now().Add(c.ttl),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("无法序列化榜单快照: %w", err)
	}
	if err := database.RDB.Set(database.Ctx, c.key, data, 0).Err(); err != nil {
		return fmt.Errorf("无法向Redis写入榜单快照: %w", err)
	}
	return nil
}

// --- 内存实现 ---

// memoryCache 把快照保存在进程内存中。
// 在Redis不可用的部署和单元测试中代替redisCache。
type memoryCache struct {
	mu   sync.Mutex
	snap *Snapshot
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryCache 创建进程内的快照缓存。
func NewMemoryCache(ttl time.Duration) Cache {
	return &memoryCache{ttl: ttl, now: time.Now}
}

func (c *memoryCache) Get() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil || !c.now().Before(c.snap.ExpiresAt) {
		return nil, nil
	}
	snap := *c.snap
	return &snap, nil
}

func (c *memoryCache) GetStale() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil {
		return nil, nil
	}
	snap := *c.snap
	return &snap, nil
}

func (c *memoryCache) Set(entries []EntryDTO) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = &Snapshot{
		Entries:   entries,
		ExpiresAt: c.now().Add(c.ttl),
	}
	return nil
}
