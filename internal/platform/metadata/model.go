package metadata

import "time"

// Entry 是metadata表中的一行。
// 系统级的少量状态（快照检查点、累计票数等）以键值对的形式存放在这张表里。
type Entry struct {
	Key       string `gorm:"primaryKey;type:varchar(255)"`
	Value     string `gorm:"type:varchar(255)"`
	UpdatedAt time.Time
}

// TableName 固定表名，避免gorm把Entry复数化
func (Entry) TableName() string {
	return "metadata"
}
