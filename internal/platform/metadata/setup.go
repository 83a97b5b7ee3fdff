package metadata

import (
	"fmt"
	"strconv"

	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
)

// PrimeDB 负责初始化metadata模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("无法迁移metadata表: %w", err)
	}
	fmt.Println("Metadata数据库表迁移成功。")
	return nil
}

// WarmupCache 将SQLite中的检查点数据预热到Redis。
// 调用方需要确保在安全的时机（如单线程启动或重建锁下）调用。
func WarmupCache() error {
	lastVoteID, err := GetLastSnapshotVoteID(database.DB)
	if err != nil {
		return fmt.Errorf("无法读取快照检查点: %w", err)
	}
	totalVotes, err := GetSnapshotTotalVotes(database.DB)
	if err != nil {
		return fmt.Errorf("无法读取快照投票总数: %w", err)
	}

	pipe := database.RDB.Pipeline()
	pipe.Set(database.Ctx, RedisLastProcessedVoteIDKey, strconv.FormatUint(uint64(lastVoteID), 10), 0)
	pipe.Set(database.Ctx, RedisTotalVotesKey, strconv.FormatInt(totalVotes, 10), 0)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热元数据到Redis失败: %w", err)
	}

	fmt.Printf("元数据预热完成: last_vote_id=%d, total_votes=%d\n", lastVoteID, totalVotes)
	return nil
}
