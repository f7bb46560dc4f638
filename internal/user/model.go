package user

import (
	"time"

	"gorm.io/gorm"
)

// User 定义了玩家在SQLite数据库中的持久化模型。
// 它只存储作为排行榜个人最佳分数来源的核心数据。
type User struct {
	// UUID 是玩家的主键，来自客户端Cookie。
	UUID string `gorm:"primarykey;type:varchar(36)"`

	// BestScore 记录了该玩家提交过的最高分数。
	// 该字段单调不减：只会被更大的分数覆盖。
	BestScore int

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
