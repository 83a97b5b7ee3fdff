package match

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MatchRequestBody 是契合度计算接口的请求体
type MatchRequestBody struct {
	Answers map[string]float64 `json:"answers" binding:"required"`
	Limit   int                `json:"limit"`
}

// MatchCandidates 处理用户与候选人的契合度计算请求
func MatchCandidates(c *gin.Context) {
	var body MatchRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数: " + err.Error()})
		return
	}

	matches, err := TopCompatibleCandidates(body.Answers, body.Limit)
	if err != nil {
		if errors.Is(err, ErrNoAnswers) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请至少回答一个问题"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "契合度计算失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// MatchParties 处理用户与党派聚合立场的契合度计算请求
func MatchParties(c *gin.Context) {
	var body MatchRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数: " + err.Error()})
		return
	}

	matches, err := CompareUserToParties(body.Answers)
	if err != nil {
		if errors.Is(err, ErrNoAnswers) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请至少回答一个问题"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "契合度计算失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
