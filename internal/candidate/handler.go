package candidate

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CandidateSummaryResponse 是候选人列表接口的单条响应
type CandidateSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
}

// CandidateDetailResponse 是候选人详情接口的响应结构
type CandidateDetailResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Party          string             `json:"party"`
	Description    string             `json:"description"`
	Email          string             `json:"email"`
	Website        string             `json:"website"`
	Answers        map[string]float64 `json:"answers"`
	Justifications map[string]string  `json:"justifications"`
}

// GetCandidates 处理候选人列表请求，支持按党派过滤 (?party=xxx)
func GetCandidates(c *gin.Context) {
	party := c.Query("party")

	var infos []CandidateInfo
	if party != "" {
		infos = GetCandidatesByParty(party)
	} else {
		infos = GetAllCandidates()
	}

	response := make([]CandidateSummaryResponse, 0, len(infos))
	for _, info := range infos {
		response = append(response, CandidateSummaryResponse{
			ID:    info.CandidateID,
			Name:  info.Name,
			Party: info.Party,
		})
	}
	c.JSON(http.StatusOK, response)
}

// GetCandidate 处理单个候选人详情请求
func GetCandidate(c *gin.Context) {
	id := c.Param("id")

	info, ok := GetCandidateByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "未找到该候选人"})
		return
	}

	c.JSON(http.StatusOK, CandidateDetailResponse{
		ID:             info.CandidateID,
		Name:           info.Name,
		Party:          info.Party,
		Description:    info.Description,
		Email:          info.Email,
		Website:        info.Website,
		Answers:        info.Answers,
		Justifications: info.Justifications,
	})
}

// GetParties 返回所有党派名称列表
func GetParties(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"parties": GetPartyNames()})
}
