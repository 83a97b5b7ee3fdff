package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/config"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
	"github.com/vaalikone-dev/vaalikone-backend/pkg/token"
)

// --- Sentinel Errors ---

// ErrInsufficientQuestions 表示对比池中的问题不足2个，无法组成配对。
// 这是系统在数据尚少时的正常状态，调用方应将其作为"暂无配对"处理。
var ErrInsufficientQuestions = errors.New("对比池中的问题数量不足")

// ErrInvalidInput 表示提交的问题数据缺失或格式错误
var ErrInvalidInput = errors.New("问题数据无效")

// --- Service-Level Data Transfer Objects (DTOs) ---

// RankedQuestionDTO 包含了排行榜API所需的所有数据
type RankedQuestionDTO struct {
	ID    string
	Info  QuestionInfo
	Stats QuestionStats
}

// PairQuestionDTO 包含了组成一个问题对的单个问题的完整信息，包括其即时排名
type PairQuestionDTO struct {
	ID          string
	Info        QuestionInfo
	CurrentRank int64
}

// PairDataDTO 是 GetNewQuestionPair 服务返回给控制器的最终数据包
type PairDataDTO struct {
	QuestionA PairQuestionDTO
	QuestionB PairQuestionDTO
	Payload   token.TokenPayload
	Signature string
}

// SubmitQuestionInput 是提交新问题所需的全部字段
type SubmitQuestionInput struct {
	TextFi   string
	TextEn   string
	Category string
	Tags     []string
}

// SubmissionResult 描述一次提交的结局：
// 要么问题被接纳（Question非nil），要么被疑似重复挡下（Duplicates非空）。
type SubmissionResult struct {
	Question   *Question
	Duplicates []DuplicateMatch
}

// --- Service Functions ---

// GetRankedQuestions 从Redis中获取完整的、已按分数排序的问题列表
func GetRankedQuestions() ([]RankedQuestionDTO, error) {
	// 1. 从Sorted Set获取所有问题ID，按分数从高到低排序
	questionIDs, err := database.RDB.ZRevRange(database.Ctx, RankingKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis获取排行榜ID: %w", err)
	}
	if len(questionIDs) == 0 {
		return []RankedQuestionDTO{}, nil
	}

	// 2. 使用Pipeline一次性获取所有问题的静态和动态数据
	pipe := database.RDB.Pipeline()
	infoCmd := pipe.HMGet(database.Ctx, InfoKey, questionIDs...)
	statsCmd := pipe.HMGet(database.Ctx, StatsKey, questionIDs...)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return nil, fmt.Errorf("执行Redis Pipeline失败: %w", err)
	}
	infoJSONs, _ := infoCmd.Result()
	statsJSONs, _ := statsCmd.Result()

	// 3. 组合成DTO列表
	ranked := make([]RankedQuestionDTO, 0, len(questionIDs))
	for i, id := range questionIDs {
		var info QuestionInfo
		var stats QuestionStats
		if infoJSONs[i] != nil {
			_ = json.Unmarshal([]byte(infoJSONs[i].(string)), &info)
		}
		if statsJSONs[i] != nil {
			_ = json.Unmarshal([]byte(statsJSONs[i].(string)), &stats)
		}
		ranked = append(ranked, RankedQuestionDTO{ID: id, Info: info, Stats: stats})
	}
	return ranked, nil
}

// GetQuestionByID 从Redis中获取单个问题的静态和动态数据
func GetQuestionByID(questionID string) (*RankedQuestionDTO, error) {
	pipe := database.RDB.Pipeline()
	infoCmd := pipe.HGet(database.Ctx, InfoKey, questionID)
	statsCmd := pipe.HGet(database.Ctx, StatsKey, questionID)
	_, err := pipe.Exec(database.Ctx)
	if err == redis.Nil {
		return nil, nil // 未找到
	}
	if err != nil {
		return nil, fmt.Errorf("无法从Redis获取问题 %s 的数据: %w", questionID, err)
	}

	var dto RankedQuestionDTO
	dto.ID = questionID
	if err := json.Unmarshal([]byte(infoCmd.Val()), &dto.Info); err != nil {
		return nil, fmt.Errorf("无法解析问题 %s 的数据: %w", questionID, err)
	}
	_ = json.Unmarshal([]byte(statsCmd.Val()), &dto.Stats)
	return &dto, nil
}

// GetNewQuestionPair 是获取对比问题对的核心业务逻辑。
// 抽取是等概率的简单随机抽样，两个问题保证互不相同；
// 跨请求的组合重复是允许且符合预期的。
func GetNewQuestionPair(excludeA, excludeB string) (*PairDataDTO, error) {
	// 1. 从Redis的排名表(Sorted Set)中获取所有问题ID
	allQuestionIDs, err := database.RDB.ZRange(database.Ctx, RankingKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis获取所有问题ID: %w", err)
	}

	// 2. 创建一个可供抽样的ID列表，并排除上一轮刚出现过的问题
	selectableIDs := make([]string, 0, len(allQuestionIDs))
	excludeMap := map[string]bool{excludeA: true, excludeB: true}
	for _, id := range allQuestionIDs {
		if !excludeMap[id] {
			selectableIDs = append(selectableIDs, id)
		}
	}

	// 3. 等概率抽取两个互不相同的问题
	idA, idB, ok := PickRandomPair(selectableIDs)
	if !ok {
		return nil, ErrInsufficientQuestions
	}

	// 4. 使用Pipeline批量获取这两个问题的静态信息和排名
	pipe := database.RDB.Pipeline()
	infoACmd := pipe.HGet(database.Ctx, InfoKey, idA)
	rankACmd := pipe.ZRevRank(database.Ctx, RankingKey, idA) // ZRevRank获取的是从0开始的排名
	infoBCmd := pipe.HGet(database.Ctx, InfoKey, idB)
	rankBCmd := pipe.ZRevRank(database.Ctx, RankingKey, idB)
	if _, err = pipe.Exec(database.Ctx); err != nil {
		return nil, fmt.Errorf("无法从Redis批量获取问题对数据: %w", err)
	}

	// 5. 解析数据
	var infoA, infoB QuestionInfo
	_ = json.Unmarshal([]byte(infoACmd.Val()), &infoA)
	_ = json.Unmarshal([]byte(infoBCmd.Val()), &infoB)

	// 6. 生成PairID和签名
	pairID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成PairID: %w", err)
	}
	payload := token.TokenPayload{
		PairID:      pairID.String(),
		QuestionAID: idA,
		QuestionBID: idB,
	}
	signature, err := token.GenerateVoteSignature(payload)
	if err != nil {
		return nil, fmt.Errorf("无法生成投票签名: %w", err)
	}

	// 7. 组合最终的响应DTO
	return &PairDataDTO{
		QuestionA: PairQuestionDTO{ID: idA, Info: infoA, CurrentRank: rankACmd.Val() + 1},
		QuestionB: PairQuestionDTO{ID: idB, Info: infoB, CurrentRank: rankBCmd.Val() + 1},
		Payload:   payload,
		Signature: signature,
	}, nil
}

// SubmitQuestion 处理一条新问题的提交。
// 验证失败返回ErrInvalidInput；检测到疑似重复时不创建问题，
// 而是在SubmissionResult中返回重复列表，由调用方决定如何呈现。
func SubmitQuestion(input SubmitQuestionInput) (*SubmissionResult, error) {
	cfg := config.Cfg.Compass

	// 1. 验证必填字段
	input.TextFi = strings.TrimSpace(input.TextFi)
	input.TextEn = strings.TrimSpace(input.TextEn)
	if input.TextFi == "" {
		return nil, fmt.Errorf("%w: 缺少问题文本", ErrInvalidInput)
	}

	// 2. 按语言分别进行重复检测，合并后保留每个问题的最高相似度
	matches := FindDuplicates(input.TextFi, GetExistingQuestionTexts("fi"), cfg.SimilarityThreshold)
	if input.TextEn != "" {
		matches = mergeMatches(matches, FindDuplicates(input.TextEn, GetExistingQuestionTexts("en"), cfg.SimilarityThreshold))
	}
	if len(matches) > 0 {
		return &SubmissionResult{Duplicates: matches}, nil
	}

	// 3. 生成ID并持久化到SQLite
	newID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成问题ID: %w", err)
	}
	tagsJSON, _ := json.Marshal(input.Tags)
	newQuestion := Question{
		QuestionID: newID.String(),
		TextFi:     input.TextFi,
		TextEn:     input.TextEn,
		Category:   input.Category,
		Tags:       string(tagsJSON),
		ScaleMin:   cfg.DefaultScaleMin,
		ScaleMax:   cfg.DefaultScaleMax,
		Rating:     cfg.InitialRating,
		Status:     StatusActive,
	}
	if err := database.DB.Create(&newQuestion).Error; err != nil {
		return nil, fmt.Errorf("无法持久化新问题: %w", err)
	}

	// 4. 写入Redis，使新问题立刻进入对比池
	info := infoFromModel(newQuestion)
	stats := QuestionStats{Rating: newQuestion.Rating}
	infoJSON, _ := json.Marshal(info)
	statsJSON, _ := json.Marshal(stats)

	pipe := database.RDB.Pipeline()
	pipe.HSet(database.Ctx, InfoKey, newQuestion.QuestionID, infoJSON)
	pipe.HSet(database.Ctx, StatsKey, newQuestion.QuestionID, statsJSON)
	pipe.ZAdd(database.Ctx, RankingKey, redis.Z{Score: newQuestion.Rating, Member: newQuestion.QuestionID})
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return nil, fmt.Errorf("无法将新问题写入Redis: %w", err)
	}

	// 5. 扩展内存仓库
	AddToRepository(newQuestion)

	fmt.Printf("新问题已接纳: %s\n", newQuestion.QuestionID)
	return &SubmissionResult{Question: &newQuestion}, nil
}

// mergeMatches 合并两个语言的重复检测结果，按问题ID去重并保留更高的相似度
func mergeMatches(a, b []DuplicateMatch) []DuplicateMatch {
	best := make(map[string]DuplicateMatch, len(a)+len(b))
	order := make([]string, 0, len(a)+len(b))
	for _, m := range append(a, b...) {
		if prev, ok := best[m.QuestionID]; !ok {
			best[m.QuestionID] = m
			order = append(order, m.QuestionID)
		} else if m.Similarity > prev.Similarity {
			best[m.QuestionID] = m
		}
	}

	merged := make([]DuplicateMatch, 0, len(order))
	for _, id := range order {
		merged = append(merged, best[id])
	}
	// 合并后重新按相似度降序排列
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Similarity > merged[j].Similarity
	})
	return merged
}
