package user

import (
	"time"

	"gorm.io/gorm"
)

// User 定义了匿名设备在SQLite数据库中的持久化模型。
// 系统中没有账号体系，一个User就是一台浏览器设备（由cookie中的UUID标识）。
type User struct {
	// UUID 是用户的主键，来自客户端Cookie。
	UUID string `gorm:"primarykey;type:varchar(36)"`

	// VotesCount 记录了该设备做出选择（投票给A或B）的总次数。
	VotesCount int

	// SkipCount 记录了该设备选择跳过的总次数。
	SkipCount int

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
