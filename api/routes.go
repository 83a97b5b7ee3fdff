package api

import (
	"github.com/gin-gonic/gin"
	"github.com/vaalikone-dev/vaalikone-backend/internal/candidate"
	"github.com/vaalikone-dev/vaalikone-backend/internal/match"
	"github.com/vaalikone-dev/vaalikone-backend/internal/question"
	"github.com/vaalikone-dev/vaalikone-backend/internal/user"
	"github.com/vaalikone-dev/vaalikone-backend/internal/vote"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 问题相关的路由组 /api/questions
		questionRoutes := api.Group("/questions")
		{
			questionRoutes.GET("/ranking", question.GetRanking)
			questionRoutes.GET("/pair", user.EnsureUserCookieMiddleware(), question.GetQuestionPair)
			questionRoutes.GET("/:id", question.GetQuestion)
			questionRoutes.POST("", question.SubmitNewQuestion)
		}

		// 投票相关的路由 /api/vote
		api.POST("/vote", user.LoadUserMiddleware(), vote.SubmitVote)

		// 候选人相关的路由组 /api/candidates
		candidateRoutes := api.Group("/candidates")
		{
			candidateRoutes.GET("", candidate.GetCandidates)
			candidateRoutes.GET("/:id", candidate.GetCandidate)
		}
		api.GET("/parties", candidate.GetParties)

		// 契合度匹配路由组 /api/match
		matchRoutes := api.Group("/match")
		{
			matchRoutes.POST("/candidates", match.MatchCandidates)
			matchRoutes.POST("/parties", match.MatchParties)
		}
	}
}
