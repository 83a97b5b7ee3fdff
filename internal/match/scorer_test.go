package match

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vaalikone-dev/vaalikone-backend/internal/question"
)

func defaultScales(qids ...string) map[string]question.Scale {
	scales := make(map[string]question.Scale, len(qids))
	for _, qid := range qids {
		scales[qid] = question.Scale{Min: -5, Max: 5}
	}
	return scales
}

func TestScoreIdenticalAnswers(t *testing.T) {
	answers := map[string]float64{"q1": 3, "q2": -5, "q3": 0}
	result := Score(answers, answers, defaultScales("q1", "q2", "q3"))

	require.Equal(t, 100.0, result.CompatibilityPercent)
	require.Equal(t, 3, result.ExactAgreements)
	require.Equal(t, 0, result.CloseAgreements)
	require.Equal(t, 0, result.Disagreements)
	require.Equal(t, 3, result.ComparedCount)
}

func TestScoreMaximalDistance(t *testing.T) {
	user := map[string]float64{"q1": -5, "q2": -5}
	other := map[string]float64{"q1": 5, "q2": 5}
	result := Score(user, other, defaultScales("q1", "q2"))

	require.Equal(t, 0.0, result.CompatibilityPercent)
	require.Equal(t, 2, result.Disagreements)
	require.Equal(t, 2, result.ComparedCount)
}

func TestScoreNoCommonQuestions(t *testing.T) {
	user := map[string]float64{"q1": 2}
	other := map[string]float64{"q2": 2}
	result := Score(user, other, defaultScales("q1", "q2"))

	require.Equal(t, Result{}, result)
}

func TestScoreCloseAgreement(t *testing.T) {
	user := map[string]float64{"q1": 2}
	other := map[string]float64{"q1": 3}
	result := Score(user, other, defaultScales("q1"))

	// 差1分: 90%契合，算作接近但不完全一致
	require.Equal(t, 90.0, result.CompatibilityPercent)
	require.Equal(t, 0, result.ExactAgreements)
	require.Equal(t, 1, result.CloseAgreements)
	require.Equal(t, 0, result.Disagreements)
}

func TestScoreMixedScales(t *testing.T) {
	// q1 使用-5..5量表 (范围10)，q2 使用1..5量表 (范围4)
	scales := map[string]question.Scale{
		"q1": {Min: -5, Max: 5},
		"q2": {Min: 1, Max: 5},
	}
	user := map[string]float64{"q1": -5, "q2": 1}
	other := map[string]float64{"q1": 5, "q2": 5}
	result := Score(user, other, scales)

	// totalDiff = 10+4 = 14, totalMaxDiff = 10+4 = 14
	require.Equal(t, 0.0, result.CompatibilityPercent)

	other = map[string]float64{"q1": -5, "q2": 1}
	result = Score(user, other, scales)
	require.Equal(t, 100.0, result.CompatibilityPercent)
}

func TestScoreRoundsToOneDecimal(t *testing.T) {
	user := map[string]float64{"q1": 0, "q2": 0, "q3": 0}
	other := map[string]float64{"q1": 1, "q2": 0, "q3": 0}
	result := Score(user, other, defaultScales("q1", "q2", "q3"))

	// 100 * (1 - 1/30) = 96.666... -> 96.7
	require.Equal(t, 96.7, result.CompatibilityPercent)
}

func TestScoreSkipsUnansweredAndUnknownScale(t *testing.T) {
	scales := defaultScales("q1")
	user := map[string]float64{"q1": 1, "q2": 2, "noScale": 3}
	other := map[string]float64{"q1": 1, "noScale": 3}
	result := Score(user, other, scales)

	// q2对方未回答，noScale没有已知量表，都不参与计算
	require.Equal(t, 1, result.ComparedCount)
	require.Equal(t, 100.0, result.CompatibilityPercent)
}

func TestScoreBreakdownIsSorted(t *testing.T) {
	answers := map[string]float64{"q3": 1, "q1": 2, "q2": 3}
	result := Score(answers, answers, defaultScales("q1", "q2", "q3"))

	require.Len(t, result.Breakdown, 3)
	require.Equal(t, "q1", result.Breakdown[0].QuestionID)
	require.Equal(t, "q2", result.Breakdown[1].QuestionID)
	require.Equal(t, "q3", result.Breakdown[2].QuestionID)
}
