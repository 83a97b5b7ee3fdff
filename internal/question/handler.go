package question

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

type RankingQuestionResponse struct {
	ID          string   `json:"id"`
	TextFi      string   `json:"textFi"`
	TextEn      string   `json:"textEn,omitempty"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Scale       Scale    `json:"scale"`
	Rating      float64  `json:"rating"`
	Comparisons int      `json:"comparisons"`
}

type QuestionPairResponse struct {
	ID       string `json:"id"`
	TextFi   string `json:"textFi"`
	TextEn   string `json:"textEn,omitempty"`
	Category string `json:"category"`
	Scale    Scale  `json:"scale"`
	Rank     int64  `json:"rank"`
}

type GetQuestionPairAPIResponse struct {
	QuestionA QuestionPairResponse `json:"questionA"`
	QuestionB QuestionPairResponse `json:"questionB"`
	PairID    string               `json:"pairId"`
	Signature string               `json:"signature"`
}

// SubmitQuestionRequestBody 定义了提交新问题时请求体的JSON结构
type SubmitQuestionRequestBody struct {
	TextFi   string   `json:"textFi" binding:"required"`
	TextEn   string   `json:"textEn"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// --- 数据格式化辅助函数 ---

func formatForRanking(dto RankedQuestionDTO) RankingQuestionResponse {
	return RankingQuestionResponse{
		ID:          dto.ID,
		TextFi:      dto.Info.TextFi,
		TextEn:      dto.Info.TextEn,
		Category:    dto.Info.Category,
		Tags:        dto.Info.Tags,
		Scale:       dto.Info.Scale,
		Rating:      dto.Stats.Rating,
		Comparisons: dto.Stats.Comparisons,
	}
}

func formatForPair(dto PairQuestionDTO) QuestionPairResponse {
	return QuestionPairResponse{
		ID:       dto.ID,
		TextFi:   dto.Info.TextFi,
		TextEn:   dto.Info.TextEn,
		Category: dto.Info.Category,
		Scale:    dto.Info.Scale,
		Rank:     dto.CurrentRank,
	}
}

// --- Gin Handlers ---

// GetRanking 返回按ELO分数降序排列的完整问题列表
func GetRanking(c *gin.Context) {
	ranked, err := GetRankedQuestions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取排行榜失败: " + err.Error()})
		return
	}

	response := make([]RankingQuestionResponse, 0, len(ranked))
	for _, dto := range ranked {
		response = append(response, formatForRanking(dto))
	}
	c.JSON(http.StatusOK, response)
}

// GetQuestion 返回单个问题的完整数据
func GetQuestion(c *gin.Context) {
	questionID := c.Param("id")
	dto, err := GetQuestionByID(questionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取问题失败: " + err.Error()})
		return
	}
	if dto == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到问题: " + questionID})
		return
	}
	c.JSON(http.StatusOK, formatForRanking(*dto))
}

// GetQuestionPair 返回一对随机抽取的问题供前端进行对比投票
func GetQuestionPair(c *gin.Context) {
	// 允许前端排除上一轮刚出现过的两个问题
	excludeA := c.Query("excludeA")
	excludeB := c.Query("excludeB")

	pairData, err := GetNewQuestionPair(excludeA, excludeB)
	if err != nil {
		if errors.Is(err, ErrInsufficientQuestions) {
			// 问题不足不是系统故障，而是数据尚少时的正常状态
			c.JSON(http.StatusNotFound, gin.H{"message": "问题数量不足，暂时无法组成对比"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取问题对失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, GetQuestionPairAPIResponse{
		QuestionA: formatForPair(pairData.QuestionA),
		QuestionB: formatForPair(pairData.QuestionB),
		PairID:    pairData.Payload.PairID,
		Signature: pairData.Signature,
	})
}

// SubmitNewQuestion 处理前端提交的新问题
func SubmitNewQuestion(c *gin.Context) {
	var body SubmitQuestionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	result, err := SubmitQuestion(SubmitQuestionInput{
		TextFi:   body.TextFi,
		TextEn:   body.TextEn,
		Category: body.Category,
		Tags:     body.Tags,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "提交问题失败: " + err.Error()})
		return
	}

	// 检测到疑似重复时，返回409和重复列表，由前端决定如何提示用户
	if result.Question == nil {
		c.JSON(http.StatusConflict, gin.H{
			"message":    "检测到疑似重复的问题",
			"duplicates": result.Duplicates,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "问题提交成功",
		"id":      result.Question.QuestionID,
	})
}
