package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	Desktop     DesktopConfig     `mapstructure:"desktop"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Redis  RedisConfig  `mapstructure:"redis"`
	Sqlite SqliteConfig `mapstructure:"sqlite"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SqliteConfig 定义了SQLite数据库文件的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// LeaderboardConfig 定义了排行榜子系统的配置
type LeaderboardConfig struct {
	// CacheTTLMinutes 是全时段排行榜快照的有效期（分钟）
	CacheTTLMinutes int `mapstructure:"cacheTTLMinutes"`
	// TopSize 是各个榜单返回的条目数上限
	TopSize int `mapstructure:"topSize"`
	// RefreshIntervalSeconds 是后台快照刷新器的周期（秒）
	RefreshIntervalSeconds int `mapstructure:"refreshIntervalSeconds"`
}

// DesktopConfig 定义了桌面窗口会话的配置
type DesktopConfig struct {
	// BaseZIndex 是窗口堆叠序号计数器的起始值，
	// 保证所有窗口都位于桌面背景之上、系统级弹层之下
	BaseZIndex int64 `mapstructure:"baseZIndex"`
	// SessionIdleMinutes 是桌面会话的空闲回收时间（分钟）
	SessionIdleMinutes int `mapstructure:"sessionIdleMinutes"`
}

// CacheTTL 返回排行榜快照的有效期
func (c LeaderboardConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// RefreshInterval 返回后台刷新器的周期
func (c LeaderboardConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// SessionIdleTimeout 返回桌面会话的空闲回收时间
func (c DesktopConfig) SessionIdleTimeout() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config") // 文件名 (不带扩展名)
	v.SetConfigType("yaml")   // 文件类型

	// 2. 添加配置文件搜索路径
	// 可以添加多个路径，Viper会按顺序查找
	v.AddConfigPath("./config") // `config/config.yaml`
	v.AddConfigPath(".")        // `./config.yaml` (如果在根目录)

	// 3. 设置合理的默认值，保证配置文件缺项时服务仍可启动
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("database.sqlite.path", "millennial.db")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("leaderboard.cacheTTLMinutes", 5)
	v.SetDefault("leaderboard.topSize", 10)
	v.SetDefault("leaderboard.refreshIntervalSeconds", 60)
	v.SetDefault("desktop.baseZIndex", 1000)
	v.SetDefault("desktop.sessionIdleMinutes", 30)

	// 4. 设置环境变量支持
	// 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 5. 读取配置文件（找不到文件时退回默认值，不视为错误）
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 7. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}
