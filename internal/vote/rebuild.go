package vote

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/metadata"
	"github.com/vaalikone-dev/vaalikone-backend/internal/question"
)

// RebuildAndApplyVotes 将快照之后到达的投票重放到Redis。
// 它在缓存重建流程中被调用：question.WarmupCache先把SQLite快照恢复到Redis，
// 本函数再把快照检查点之后的投票记录依次重新计算，使评分追上最新状态。
// 调用方需要保证此时没有并发的投票写入。
func RebuildAndApplyVotes() error {
	lastSnapshotID, err := metadata.GetLastSnapshotVoteID(database.DB)
	if err != nil {
		return fmt.Errorf("无法读取快照检查点: %w", err)
	}

	var pendingVotes []Vote
	err = database.DB.Where("id > ?", lastSnapshotID).Order("id asc").Find(&pendingVotes).Error
	if err != nil {
		return fmt.Errorf("无法从SQLite读取待重放的投票: %w", err)
	}
	if len(pendingVotes) == 0 {
		fmt.Println("投票重放: 没有需要重放的投票。")
		return nil
	}

	replayed := 0
	lastAppliedID := lastSnapshotID
	for _, v := range pendingVotes {
		applied, err := replaySingleVote(v)
		if err != nil {
			return fmt.Errorf("重放投票 %d 失败: %w", v.ID, err)
		}
		if applied {
			replayed++
		}
		lastAppliedID = v.ID
	}

	// 重放完成后推进实时检查点
	pipe := database.RDB.Pipeline()
	pipe.Set(database.Ctx, metadata.RedisLastProcessedVoteIDKey, strconv.FormatUint(uint64(lastAppliedID), 10), 0)
	pipe.IncrBy(database.Ctx, metadata.RedisTotalVotesKey, int64(replayed))
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("重放后更新检查点失败: %w", err)
	}

	fmt.Printf("投票重放完成: 共 %d 条记录，其中 %d 条影响评分。\n", len(pendingVotes), replayed)
	return nil
}

// replaySingleVote 把一条历史投票重新应用到Redis，返回它是否影响了评分
func replaySingleVote(v Vote) (bool, error) {
	if v.Result == ResultSkip {
		return false, nil
	}

	statsJSONs, err := database.RDB.HMGet(database.Ctx, question.StatsKey, v.QuestionA_ID, v.QuestionB_ID).Result()
	if err != nil {
		return false, err
	}
	if statsJSONs[0] == nil || statsJSONs[1] == nil {
		// 问题可能在快照之后才被接纳；找不到就跳过这条记录
		fmt.Printf("投票重放警告: 投票 %d 引用了未知的问题，已跳过。\n", v.ID)
		return false, nil
	}

	var statsA, statsB question.QuestionStats
	_ = json.Unmarshal([]byte(statsJSONs[0].(string)), &statsA)
	_ = json.Unmarshal([]byte(statsJSONs[1].(string)), &statsB)

	switch v.Result {
	case ResultAWins:
		statsA.Rating, statsB.Rating = CalculateElo(statsA.Rating, statsB.Rating)
	case ResultBWins:
		statsB.Rating, statsA.Rating = CalculateElo(statsB.Rating, statsA.Rating)
	}
	statsA.Comparisons++
	statsB.Comparisons++

	pipe := database.RDB.Pipeline()
	newStatsAJSON, _ := json.Marshal(statsA)
	newStatsBJSON, _ := json.Marshal(statsB)
	pipe.HSet(database.Ctx, question.StatsKey, v.QuestionA_ID, newStatsAJSON)
	pipe.HSet(database.Ctx, question.StatsKey, v.QuestionB_ID, newStatsBJSON)
	pipe.ZAdd(database.Ctx, question.RankingKey, redis.Z{Score: statsA.Rating, Member: v.QuestionA_ID})
	pipe.ZAdd(database.Ctx, question.RankingKey, redis.Z{Score: statsB.Rating, Member: v.QuestionB_ID})
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return false, err
	}
	return true, nil
}
