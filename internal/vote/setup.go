package vote

import (
	"fmt"

	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
	"github.com/vaalikone-dev/vaalikone-backend/internal/user"
)

// PrimeDB 迁移vote表，并把历史投票中出现过的设备标识补录到user表。
// 补录让user表在早期版本没有记录设备的情况下也能保持完整。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Vote{}); err != nil {
		return fmt.Errorf("无法迁移vote表: %w", err)
	}
	fmt.Println("Vote数据库表迁移成功。")

	return backfillKnownDevices()
}

// backfillKnownDevices 从历史投票记录中提取去重后的设备ID并批量建档
func backfillKnownDevices() error {
	var deviceIDs []string
	err := database.DB.Model(&Vote{}).
		Where("user_identifier != ?", "").
		Distinct("user_identifier").
		Pluck("user_identifier", &deviceIDs).Error
	if err != nil {
		return fmt.Errorf("无法从vote表提取设备ID: %w", err)
	}
	if len(deviceIDs) == 0 {
		return nil
	}

	if err := user.BatchCreateUsers(deviceIDs); err != nil {
		return fmt.Errorf("补录设备档案失败: %w", err)
	}
	fmt.Printf("从投票历史补录了 %d 个设备档案。\n", len(deviceIDs))
	return nil
}
