package vote

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vaalikone-dev/vaalikone-backend/internal/user"
	"github.com/vaalikone-dev/vaalikone-backend/pkg/token"
)

// VoteRequestBody 定义了前端提交投票时，请求体的JSON结构。
// payload和signature来自 /pair 接口的响应，原样带回。
type VoteRequestBody struct {
	PairID      string     `json:"pairId" binding:"required"`
	QuestionAID string     `json:"questionAId" binding:"required"`
	QuestionBID string     `json:"questionBId" binding:"required"`
	Result      VoteResult `json:"result" binding:"required"`
	Signature   string     `json:"signature" binding:"required"`
}

// VoteResponseBody 返回双方更新后的评分
type VoteResponseBody struct {
	Message    string  `json:"message"`
	NewRatingA float64 `json:"newRatingA"`
	NewRatingB float64 `json:"newRatingB"`
}

// SubmitVote 处理前端提交的投票结果
func SubmitVote(c *gin.Context) {
	var body VoteRequestBody

	// 1. 绑定并验证请求体
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	// 2. 验证payload签名，确保投票针对的是服务器发出的问题对
	payload := token.TokenPayload{
		PairID:      body.PairID,
		QuestionAID: body.QuestionAID,
		QuestionBID: body.QuestionBID,
	}
	if !token.ValidateVoteSignature(payload, body.Signature) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "投票签名无效"})
		return
	}

	// 3. 从上下文中读取匿名设备标识 (由user中间件注入)
	userID := c.GetString(user.UserIDKey)

	// 4. 处理投票
	outcome, err := ProcessVote(body.QuestionAID, body.QuestionBID, body.Result, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuestionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInvalidResult):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "处理投票失败: " + err.Error()})
		}
		return
	}

	// 5. 跳过类投票没有评分变化
	if outcome == nil {
		c.JSON(http.StatusOK, gin.H{"message": "已记录跳过"})
		return
	}

	c.JSON(http.StatusOK, VoteResponseBody{
		Message:    "投票成功",
		NewRatingA: outcome.NewStatsA.Rating,
		NewRatingB: outcome.NewStatsB.Rating,
	})
}
