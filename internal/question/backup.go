package question

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/metadata"
	"github.com/vaalikone-dev/vaalikone-backend/pkg/lifecycle"
	"gorm.io/gorm"
)

const backupInterval = 10 * time.Minute // 定时快照频率

// StartBackupScheduler 启动一个后台Goroutine来定期把Redis中的评分状态快照回SQLite。
// 它接收一个lifecycle.Handle来管理其生命周期。
func StartBackupScheduler(handle *lifecycle.Handle) {
	defer handle.Close() // 确保在退出时通知管理器
	fmt.Println("问题数据备份调度器已启动。")

	for {
		// 使用可中断的休眠来代替ticker，
		// 使整个循环可以在收到停机信号时立刻从休眠中唤醒并退出。
		if err := handle.Sleep(backupInterval); err != nil {
			fmt.Printf("备份调度器: 休眠被中断，正在关闭... (%v)\n", err)
			return
		}

		if !database.IsRedisHealthy() {
			fmt.Println("备份调度器: 检测到Redis不可用，跳过本次备份。")
			continue
		}

		fmt.Println("备份调度器: 正在执行定时快照...")
		if err := CreateConsistentSnapshotInDB(handle.Ctx()); err != nil {
			// 如果错误是由于停机信号导致的，则静默退出
			if err != context.Canceled && err != context.DeadlineExceeded {
				fmt.Printf("备份调度器错误: 执行快照备份失败: %v\n", err)
			}
		} else {
			fmt.Println("备份调度器: 快照备份成功。")
		}
	}
}

// CreateConsistentSnapshotInDB 执行一次原子的、一致的快照备份：
// 把Redis中的实时评分、对比次数和排名连同投票检查点一起写回SQLite。
func CreateConsistentSnapshotInDB(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err() // 如果已收到信号，则放弃操作
	default:
	}

	// 1. 使用原子事务(TxPipeline)从Redis获取快照
	pipe := database.RDB.TxPipeline()
	lastVoteIDCmd := pipe.Get(database.Ctx, metadata.RedisLastProcessedVoteIDKey)
	totalVotesCmd := pipe.Get(database.Ctx, metadata.RedisTotalVotesKey)
	statsMapCmd := pipe.HGetAll(database.Ctx, StatsKey)
	sortedIDsCmd := pipe.ZRevRange(database.Ctx, RankingKey, 0, -1)
	_, err := pipe.Exec(database.Ctx)

	if err != nil && err != redis.Nil {
		return fmt.Errorf("无法从Redis原子地获取快照数据: %w", err)
	}

	lastVoteIDStr, err := lastVoteIDCmd.Result()
	if err == redis.Nil {
		fmt.Println("备份调度器: 关键元数据不存在 (可能尚未处理任何投票)，跳过备份。")
		return nil
	}
	if err != nil {
		return fmt.Errorf("获取投票检查点失败: %w", err)
	}
	lastVoteID, err := strconv.ParseUint(lastVoteIDStr, 10, 32)
	if err != nil {
		return fmt.Errorf("解析投票检查点失败: %w", err)
	}
	totalVotes, _ := totalVotesCmd.Int64()
	statsMap, err := statsMapCmd.Result()
	if err != nil {
		return fmt.Errorf("获取问题统计数据失败: %w", err)
	}
	sortedQuestionIDs, err := sortedIDsCmd.Result()
	if err != nil {
		return fmt.Errorf("获取问题排名失败: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err() // 如果在读取Redis后收到了信号，则放弃写入
	default:
	}

	// 2. 将快照数据持久化到SQLite
	return database.DB.Transaction(func(tx *gorm.DB) error {
		for i, questionID := range sortedQuestionIDs {
			rank := i + 1
			statsJSON, ok := statsMap[questionID]
			if !ok {
				// 如果在stats哈希表中找不到ID，说明数据可能不一致，跳过此条记录
				fmt.Printf("备份警告: 在stats哈希表中找不到ID为 %s 的问题，跳过备份。\n", questionID)
				continue
			}
			var stats QuestionStats
			if err := json.Unmarshal([]byte(statsJSON), &stats); err != nil {
				fmt.Printf("备份警告: 无法解析问题 %s 的统计数据，跳过备份。\n", questionID)
				continue
			}

			updates := map[string]interface{}{
				"rating":      stats.Rating,
				"comparisons": stats.Comparisons,
				"rank":        rank,
			}
			if err := tx.Model(&Question{}).Where("question_id = ?", questionID).Updates(updates).Error; err != nil {
				return fmt.Errorf("无法更新问题 %s 的快照数据: %w", questionID, err)
			}
		}

		// 3. 在同一个事务中推进检查点
		if err := metadata.SetLastSnapshotVoteID(tx, uint(lastVoteID)); err != nil {
			return fmt.Errorf("无法更新快照检查点: %w", err)
		}
		if err := metadata.SetSnapshotTotalVotes(tx, totalVotes); err != nil {
			return fmt.Errorf("无法更新快照投票总数: %w", err)
		}
		return nil
	})
}
