package vote

import "math"

// eloKFactor 是ELO算法中的K值，它决定了每次对比后分数变化的大小。
// 值越高，分数变化越剧烈。32是一个常用的标准值。
const eloKFactor = 32

// CalculateElo 计算一次对比后双方的新ELO分数。
// 结果四舍五入到整数：问题评分在整个系统中都以整数存储和展示。
//
// 同一场对比重复提交会让分数进一步偏移而不是保持不变——
// 评分更新天然不具备幂等性，重复投票的去重不在本层的职责范围内。
func CalculateElo(winnerRating, loserRating float64) (newWinnerRating, newLoserRating float64) {
	// 1. 计算双方的期望胜率
	expectedWinner := 1.0 / (1.0 + math.Pow(10, (loserRating-winnerRating)/400.0))
	expectedLoser := 1.0 - expectedWinner

	// 2. 根据实际结果(胜=1, 负=0)和期望胜率，更新分数
	newWinnerRating = math.Round(winnerRating + eloKFactor*(1-expectedWinner))
	newLoserRating = math.Round(loserRating + eloKFactor*(0-expectedLoser))

	return
}
