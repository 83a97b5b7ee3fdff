package user

import (
	"fmt"

	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
)

// PrimeCachedDB 负责初始化user模块的数据库和Redis缓存
func PrimeCachedDB() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移user表: %w", err)
	}
	fmt.Println("User数据库表迁移成功。")

	return WarmupCache()
}

// WarmupCache 把SQLite中所有已知设备UUID预热到Redis Set。
// 调用方需要确保在安全的时机（如单线程启动或重建锁下）调用。
func WarmupCache() error {
	var uuids []string
	if err := database.DB.Model(&User{}).Pluck("uuid", &uuids).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取用户UUID: %w", err)
	}

	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, KnownUsersKey)
	if len(uuids) > 0 {
		members := make([]interface{}, len(uuids))
		for i, id := range uuids {
			members[i] = id
		}
		pipe.SAdd(database.Ctx, KnownUsersKey, members...)
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热用户缓存到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个已知设备到Redis。\n", len(uuids))
	return nil
}
