package candidate

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Candidate 定义了数据库中候选人的数据结构。
// 候选人由管理端/种子数据创建；兼容度永远是派生值，从不落库。
type Candidate struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// CandidateID 是候选人的唯一字符串ID
	CandidateID string `gorm:"uniqueIndex;not null" json:"id"`

	// Name 是候选人的姓名
	Name string `json:"name"`

	// Party 是候选人所属政党的名称。
	// 政党不是独立存储的实体，而是按这个字符串在读取时派生分组。
	Party string `json:"party"`

	// Description 是候选人的自由文本简介
	Description string `json:"description"`

	// Email 和 Website 是联系/媒体信息
	Email   string `json:"email"`
	Website string `json:"website"`

	// Answers 是JSON编码的 问题ID -> 答案值 映射。
	// 答案值必须落在对应问题声明的量表内，每个候选人每个问题只有一个答案。
	Answers string `json:"answers"`

	// Justifications 是JSON编码的 问题ID -> 理由文本 映射 (可选)
	Justifications string `json:"justifications"`
}

// AnswersMap 解码候选人的答案映射。编码损坏时返回空映射。
func (c *Candidate) AnswersMap() map[string]float64 {
	answers := make(map[string]float64)
	if c.Answers != "" {
		_ = json.Unmarshal([]byte(c.Answers), &answers)
	}
	return answers
}

// JustificationsMap 解码候选人的理由映射。
func (c *Candidate) JustificationsMap() map[string]string {
	justifications := make(map[string]string)
	if c.Justifications != "" {
		_ = json.Unmarshal([]byte(c.Justifications), &justifications)
	}
	return justifications
}
