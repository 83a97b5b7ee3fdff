package vote

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/metadata"
	"github.com/vaalikone-dev/vaalikone-backend/internal/question"
	"github.com/vaalikone-dev/vaalikone-backend/internal/user"
	"gorm.io/gorm"
)

// ErrQuestionNotFound 表示投票引用的问题ID不在评分存储中
var ErrQuestionNotFound = errors.New("一个或多个问题不存在")

// ErrInvalidResult 表示投票结果不是合法的枚举值
var ErrInvalidResult = errors.New("无效的投票结果")

// VoteOutcome 描述一次投票被处理后双方的新状态
type VoteOutcome struct {
	QuestionAID string
	QuestionBID string
	NewStatsA   question.QuestionStats
	NewStatsB   question.QuestionStats
}

// ProcessVote 是处理投票的核心函数。
// 每次投票对两个问题评分的读取-计算-写回被包在一个Redis WATCH事务中，
// 防止并发投票造成丢失更新；除这两个问题外不触碰任何其他问题。
func ProcessVote(questionAID, questionBID string, result VoteResult, userID string) (*VoteOutcome, error) {
	// 1. 在所有操作开始前，验证投票结果是否合法
	switch result {
	case ResultAWins, ResultBWins:
		// 合法，继续执行
	case ResultSkip:
		// 对于跳过的投票，我们只记录，不进行任何分数更新
		if _, err := persistVoteRecord(questionAID, questionBID, result, userID); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidResult, result)
	}

	var outcome VoteOutcome

	// 2. 使用Redis的WATCH来监视问题统计数据
	err := database.RDB.Watch(database.Ctx, func(tx *redis.Tx) error {
		// 3. 获取两个问题当前的统计数据
		keys := []string{questionAID, questionBID}
		statsJSONs, err := tx.HMGet(database.Ctx, question.StatsKey, keys...).Result()
		if err != nil {
			return fmt.Errorf("无法从Redis获取问题统计数据: %w", err)
		}
		if statsJSONs[0] == nil || statsJSONs[1] == nil {
			return ErrQuestionNotFound
		}

		var statsA, statsB question.QuestionStats
		_ = json.Unmarshal([]byte(statsJSONs[0].(string)), &statsA)
		_ = json.Unmarshal([]byte(statsJSONs[1].(string)), &statsB)

		oldStatsA, oldStatsB := statsA, statsB

		// 4. 根据投票结果，计算新的分数并累加双方的对比次数
		switch result {
		case ResultAWins:
			statsA.Rating, statsB.Rating = CalculateElo(statsA.Rating, statsB.Rating)
		case ResultBWins:
			statsB.Rating, statsA.Rating = CalculateElo(statsB.Rating, statsA.Rating)
		}
		statsA.Comparisons++
		statsB.Comparisons++

		// 5. 使用Pipeline在同一个事务中执行所有Redis写操作
		_, err = tx.TxPipelined(database.Ctx, func(pipe redis.Pipeliner) error {
			newStatsAJSON, _ := json.Marshal(statsA)
			newStatsBJSON, _ := json.Marshal(statsB)
			pipe.HSet(database.Ctx, question.StatsKey, questionAID, newStatsAJSON)
			pipe.HSet(database.Ctx, question.StatsKey, questionBID, newStatsBJSON)
			pipe.ZAdd(database.Ctx, question.RankingKey, redis.Z{Score: statsA.Rating, Member: questionAID})
			pipe.ZAdd(database.Ctx, question.RankingKey, redis.Z{Score: statsB.Rating, Member: questionBID})
			return nil
		})
		if err != nil {
			return fmt.Errorf("执行Redis事务失败: %w", err)
		}

		// 6. Redis事务成功后，尝试将投票记录写入SQLite
		voteID, err := persistVoteRecord(questionAID, questionBID, result, userID)
		if err != nil {
			fmt.Printf("警告: SQLite写入失败，正在回滚Redis更改: %v\n", err)
			revertRedisChanges(questionAID, questionBID, oldStatsA, oldStatsB)
			return fmt.Errorf("无法持久化投票记录，操作已回滚: %w", err)
		}

		// 7. 推进实时检查点 (尽力而为；落后的检查点只会让重放多做一点工作)
		advanceCheckpoint(voteID)

		outcome = VoteOutcome{
			QuestionAID: questionAID,
			QuestionBID: questionBID,
			NewStatsA:   statsA,
			NewStatsB:   statsB,
		}
		return nil
	}, question.StatsKey)

	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// persistVoteRecord 在一个SQLite事务中写入投票记录并更新用户计数器
func persistVoteRecord(questionAID, questionBID string, result VoteResult, userID string) (uint, error) {
	newVote := Vote{
		QuestionA_ID:   questionAID,
		QuestionB_ID:   questionBID,
		Result:         result,
		UserIdentifier: userID,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newVote).Error; err != nil {
			return err
		}
		if userID != "" {
			if err := user.RecordVoteOutcome(tx, userID, result == ResultSkip); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newVote.ID, nil
}

// revertRedisChanges 执行补偿事务，将Redis中的数据恢复到之前的状态
func revertRedisChanges(questionAID, questionBID string, oldStatsA, oldStatsB question.QuestionStats) {
	pipe := database.RDB.Pipeline()
	oldStatsAJSON, _ := json.Marshal(oldStatsA)
	oldStatsBJSON, _ := json.Marshal(oldStatsB)
	pipe.HSet(database.Ctx, question.StatsKey, questionAID, oldStatsAJSON)
	pipe.HSet(database.Ctx, question.StatsKey, questionBID, oldStatsBJSON)
	pipe.ZAdd(database.Ctx, question.RankingKey, redis.Z{Score: oldStatsA.Rating, Member: questionAID})
	pipe.ZAdd(database.Ctx, question.RankingKey, redis.Z{Score: oldStatsB.Rating, Member: questionBID})
	if _, err := pipe.Exec(database.Ctx); err != nil {
		fmt.Printf("严重错误: Redis补偿事务执行失败: %v\n", err)
	}
}

// advanceCheckpoint 更新Redis中的实时投票检查点和总票数
func advanceCheckpoint(voteID uint) {
	pipe := database.RDB.Pipeline()
	pipe.Set(database.Ctx, metadata.RedisLastProcessedVoteIDKey, strconv.FormatUint(uint64(voteID), 10), 0)
	pipe.Incr(database.Ctx, metadata.RedisTotalVotesKey)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		fmt.Printf("警告: 更新投票检查点失败: %v\n", err)
	}
}
