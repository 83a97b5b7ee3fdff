package match

import (
	"errors"
	"sort"

	"github.com/vaalikone-dev/vaalikone-backend/internal/candidate"
	"github.com/vaalikone-dev/vaalikone-backend/internal/question"
)

// ErrNoAnswers 表示用户没有提交任何有效作答
var ErrNoAnswers = errors.New("没有可用于匹配的作答")

// CandidateMatch 是用户与单个候选人的匹配结果
type CandidateMatch struct {
	CandidateID string `json:"candidateId"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	Result      Result `json:"result"`
}

// PartyMatch 是用户与单个党派聚合立场的匹配结果
type PartyMatch struct {
	Party           string  `json:"party"`
	Consensus       float64 `json:"consensus"`
	TotalCandidates int     `json:"totalCandidates"`
	Result          Result  `json:"result"`
}

// TopCompatibleCandidates 计算用户与全部候选人的契合度，按契合度降序返回。
// 与用户没有任何共同作答的候选人会被过滤掉。limit <= 0 表示不限制数量。
func TopCompatibleCandidates(userAnswers map[string]float64, limit int) ([]CandidateMatch, error) {
	if len(userAnswers) == 0 {
		return nil, ErrNoAnswers
	}

	scales := question.GetAllScales()
	candidates := candidate.GetAllCandidates()

	matches := make([]CandidateMatch, 0, len(candidates))
	for _, c := range candidates {
		result := Score(userAnswers, c.Answers, scales)
		if result.ComparedCount == 0 {
			continue
		}
		matches = append(matches, CandidateMatch{
			CandidateID: c.CandidateID,
			Name:        c.Name,
			Party:       c.Party,
			Result:      result,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.CompatibilityPercent > matches[j].Result.CompatibilityPercent
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// CompareUserToParties 把用户作答与每个党派的聚合立场逐一比较，按契合度降序返回
func CompareUserToParties(userAnswers map[string]float64) ([]PartyMatch, error) {
	if len(userAnswers) == 0 {
		return nil, ErrNoAnswers
	}

	scales := question.GetAllScales()

	var matches []PartyMatch
	for _, party := range candidate.GetPartyNames() {
		members := candidate.GetCandidatesByParty(party)
		profile := Aggregate(party, members, scales)
		result := Score(userAnswers, profile.AveragedAnswers, scales)
		if result.ComparedCount == 0 {
			continue
		}
		matches = append(matches, PartyMatch{
			Party:           party,
			Consensus:       profile.Consensus,
			TotalCandidates: profile.TotalCandidates,
			Result:          result,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.CompatibilityPercent > matches[j].Result.CompatibilityPercent
	})
	return matches, nil
}
