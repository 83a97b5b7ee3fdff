package question

import (
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
)

// PrimeCachedDB 负责初始化question模块的数据库和内存仓库
func PrimeCachedDB() error {
	// 1. 迁移数据库表结构
	if err := migrateDB(); err != nil {
		return err
	}
	// 2. 从数据库加载静态数据到内存仓库
	if err := InitializeRepository(); err != nil {
		return err
	}
	// 3. 将动态数据预热到Redis
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Question{}); err != nil {
		return fmt.Errorf("无法迁移question表: %w", err)
	}
	fmt.Println("Question数据库表迁移成功。")
	return nil
}

// WarmupCache 从SQLite加载问题数据到Redis。
// 注意：此函数不包含锁，调用方需要确保在安全的时机（如单线程启动或重建锁下）调用。
func WarmupCache() error {
	var questionsInDB []Question
	if err := database.DB.Find(&questionsInDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取问题数据: %w", err)
	}

	pipe := database.RDB.Pipeline()
	// 先清空旧的Redis键，保证预热结果与SQLite完全一致
	pipe.Del(database.Ctx, InfoKey, StatsKey, RankingKey)

	for _, q := range questionsInDB {
		info := infoFromModel(q)
		stats := QuestionStats{
			Rating:      q.Rating,
			Comparisons: q.Comparisons,
		}
		infoJSON, _ := json.Marshal(info)
		statsJSON, _ := json.Marshal(stats)

		pipe.HSet(database.Ctx, InfoKey, q.QuestionID, infoJSON)
		pipe.HSet(database.Ctx, StatsKey, q.QuestionID, statsJSON)
		pipe.ZAdd(database.Ctx, RankingKey, redis.Z{
			Score:  q.Rating,
			Member: q.QuestionID,
		})
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热问题动态数据到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 条问题的动态数据到Redis。\n", len(questionsInDB))
	return nil
}
