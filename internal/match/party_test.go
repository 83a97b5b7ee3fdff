package match

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vaalikone-dev/vaalikone-backend/internal/candidate"
)

func member(id string, answers map[string]float64) candidate.CandidateInfo {
	return candidate.CandidateInfo{
		CandidateID: id,
		Name:        "Ehdokas " + id,
		Party:       "Testipuolue",
		Answers:     answers,
	}
}

func TestAggregateAveragesAnswers(t *testing.T) {
	members := []candidate.CandidateInfo{
		member("c1", map[string]float64{"q1": 4, "q2": -2}),
		member("c2", map[string]float64{"q1": 2}),
	}
	profile := Aggregate("Testipuolue", members, defaultScales("q1", "q2"))

	require.Equal(t, 2, profile.TotalCandidates)
	require.Equal(t, 3.0, profile.AveragedAnswers["q1"])
	// q2只有c1回答，平均值就是其作答
	require.Equal(t, -2.0, profile.AveragedAnswers["q2"])
}

func TestAggregateUnanimousConsensus(t *testing.T) {
	members := []candidate.CandidateInfo{
		member("c1", map[string]float64{"q1": 5, "q2": -3}),
		member("c2", map[string]float64{"q1": 5, "q2": -3}),
		member("c3", map[string]float64{"q1": 5, "q2": -3}),
	}
	profile := Aggregate("Testipuolue", members, defaultScales("q1", "q2"))
	require.Equal(t, 100.0, profile.Consensus)
}

func TestAggregateSingleCandidate(t *testing.T) {
	members := []candidate.CandidateInfo{
		member("c1", map[string]float64{"q1": 5}),
	}
	profile := Aggregate("Testipuolue", members, defaultScales("q1"))

	// 单人党派没有内部分歧
	require.Equal(t, 100.0, profile.Consensus)
	require.Equal(t, 1, profile.TotalCandidates)
	require.Equal(t, 5.0, profile.AveragedAnswers["q1"])
}

func TestAggregateEmptyParty(t *testing.T) {
	profile := Aggregate("Tyhjä", nil, defaultScales("q1"))
	require.Equal(t, 0, profile.TotalCandidates)
	require.Empty(t, profile.AveragedAnswers)
}

func TestAggregateDividedParty(t *testing.T) {
	// 两名候选人在-5..5量表上对立: 差10 -> 该问题两两契合度0
	members := []candidate.CandidateInfo{
		member("c1", map[string]float64{"q1": -5}),
		member("c2", map[string]float64{"q1": 5}),
	}
	profile := Aggregate("Testipuolue", members, defaultScales("q1"))

	require.Equal(t, 0.0, profile.Consensus)
	require.Equal(t, 0.0, profile.AveragedAnswers["q1"])
}

func TestAggregatePartialDisagreement(t *testing.T) {
	// q1: 完全一致 (100), q2: 差5/范围10 -> 50。问题层面平均 -> 75
	members := []candidate.CandidateInfo{
		member("c1", map[string]float64{"q1": 2, "q2": 0}),
		member("c2", map[string]float64{"q1": 2, "q2": 5}),
	}
	profile := Aggregate("Testipuolue", members, defaultScales("q1", "q2"))
	require.Equal(t, 75.0, profile.Consensus)
}

func TestAggregateIgnoresSingleAnswerQuestions(t *testing.T) {
	// q2只有一人回答，不计入一致度；q1完全一致 -> 100
	members := []candidate.CandidateInfo{
		member("c1", map[string]float64{"q1": 1, "q2": -5}),
		member("c2", map[string]float64{"q1": 1}),
	}
	profile := Aggregate("Testipuolue", members, defaultScales("q1", "q2"))
	require.Equal(t, 100.0, profile.Consensus)
}
