package match

import (
	"math"
	"sort"

	"github.com/vaalikone-dev/vaalikone-backend/internal/question"
)

// QuestionBreakdown 记录单个问题上双方的作答差异
type QuestionBreakdown struct {
	QuestionID   string  `json:"questionId"`
	UserAnswer   float64 `json:"userAnswer"`
	OtherAnswer  float64 `json:"otherAnswer"`
	Difference   float64 `json:"difference"`
	AgreementPct float64 `json:"agreementPct"`
}

// Result 是两组作答之间的契合度计算结果
type Result struct {
	CompatibilityPercent float64             `json:"compatibilityPercent"`
	ExactAgreements      int                 `json:"exactAgreements"`
	CloseAgreements      int                 `json:"closeAgreements"`
	Disagreements        int                 `json:"disagreements"`
	ComparedCount        int                 `json:"comparedCount"`
	Breakdown            []QuestionBreakdown `json:"breakdown,omitempty"`
}

// roundTo1 将浮点数四舍五入到一位小数
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Score 计算用户作答与另一组作答之间的契合度。
// 只比较双方都回答过的问题；每个问题的最大可能差异取自该问题自身的量表范围，
// 因此不同量表的问题可以混合计算。双方没有共同回答的问题时返回全零结果。
func Score(userAnswers, otherAnswers map[string]float64, scales map[string]question.Scale) Result {
	var result Result
	var totalDiff, totalMaxDiff float64

	for qid, userAnswer := range userAnswers {
		otherAnswer, ok := otherAnswers[qid]
		if !ok {
			continue
		}
		scale, ok := scales[qid]
		if !ok {
			continue
		}
		maxDiff := scale.Range()
		if maxDiff <= 0 {
			continue
		}

		diff := math.Abs(userAnswer - otherAnswer)
		totalDiff += diff
		totalMaxDiff += maxDiff
		result.ComparedCount++

		switch {
		case diff == 0:
			result.ExactAgreements++
		case diff <= 1:
			result.CloseAgreements++
		default:
			result.Disagreements++
		}

		result.Breakdown = append(result.Breakdown, QuestionBreakdown{
			QuestionID:   qid,
			UserAnswer:   userAnswer,
			OtherAnswer:  otherAnswer,
			Difference:   diff,
			AgreementPct: roundTo1(100 * (1 - diff/maxDiff)),
		})
	}

	if result.ComparedCount == 0 {
		return Result{}
	}

	// map遍历顺序不确定，按问题ID排序保证输出稳定
	sort.Slice(result.Breakdown, func(i, j int) bool {
		return result.Breakdown[i].QuestionID < result.Breakdown[j].QuestionID
	})

	result.CompatibilityPercent = roundTo1(100 * (1 - totalDiff/totalMaxDiff))
	return result
}
