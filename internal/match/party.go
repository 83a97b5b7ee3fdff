package match

import (
	"math"

	"github.com/vaalikone-dev/vaalikone-backend/internal/candidate"
	"github.com/vaalikone-dev/vaalikone-backend/internal/question"
)

// PartyProfile 是一个党派的聚合立场
type PartyProfile struct {
	Party           string             `json:"party"`
	AveragedAnswers map[string]float64 `json:"averagedAnswers"`
	Consensus       float64            `json:"consensus"`
	TotalCandidates int                `json:"totalCandidates"`
}

// Aggregate 把一个党派内所有候选人的作答聚合成党派立场。
// 每个问题取回答过该问题的候选人的平均值；内部一致度按有至少两人作答的问题
// 的两两契合度平均计算。只有一名候选人的党派没有内部分歧，一致度为100。
func Aggregate(party string, members []candidate.CandidateInfo, scales map[string]question.Scale) PartyProfile {
	profile := PartyProfile{
		Party:           party,
		AveragedAnswers: make(map[string]float64),
		TotalCandidates: len(members),
	}
	if len(members) == 0 {
		return profile
	}

	// 按问题收集所有回答
	answersByQuestion := make(map[string][]float64)
	for _, m := range members {
		for qid, answer := range m.Answers {
			answersByQuestion[qid] = append(answersByQuestion[qid], answer)
		}
	}

	for qid, answers := range answersByQuestion {
		var sum float64
		for _, a := range answers {
			sum += a
		}
		profile.AveragedAnswers[qid] = sum / float64(len(answers))
	}

	if len(members) == 1 {
		profile.Consensus = 100
		return profile
	}

	// 问题层面的一致度: 该问题上所有候选人两两之间的契合度平均值
	var consensusSum float64
	var consensusCount int
	for qid, answers := range answersByQuestion {
		if len(answers) < 2 {
			continue
		}
		scale, ok := scales[qid]
		if !ok || scale.Range() <= 0 {
			continue
		}
		rangeSize := scale.Range()

		var pairSum float64
		var pairCount int
		for i := 0; i < len(answers); i++ {
			for j := i + 1; j < len(answers); j++ {
				diff := math.Abs(answers[i] - answers[j])
				pairSum += 100 * (1 - diff/rangeSize)
				pairCount++
			}
		}
		consensusSum += pairSum / float64(pairCount)
		consensusCount++
	}

	if consensusCount > 0 {
		profile.Consensus = roundTo1(consensusSum / float64(consensusCount))
	} else {
		profile.Consensus = 100
	}
	return profile
}
