package question

import "gorm.io/gorm"

// QuestionStatus 定义了问题的生命周期状态
type QuestionStatus string

const (
	// StatusActive 表示问题已进入对比池，可以被抽取和投票
	StatusActive QuestionStatus = "active"
	// StatusPending 表示问题已提交但尚未进入对比池
	StatusPending QuestionStatus = "pending"
)

// Question 定义了数据库中问题的数据结构
type Question struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// QuestionID 是问题的唯一字符串ID (UUID)
	// 我们将使用它作为业务逻辑中的主键
	QuestionID string `gorm:"uniqueIndex;not null" json:"id"`

	// TextFi 是问题的芬兰语文本
	TextFi string `json:"text_fi"`

	// TextEn 是问题的英语文本 (可选)
	TextEn string `json:"text_en"`

	// Category 是问题的分类
	Category string `json:"category"`

	// Tags 是JSON编码的标签列表，顺序无意义
	Tags string `json:"tags"`

	// ScaleMin/ScaleMax 是该问题声明的答案量表
	// 同一次计算中绝不允许混用两种量表
	ScaleMin float64 `json:"scale_min"`
	ScaleMax float64 `json:"scale_max"`

	// --- 以下是用于排名的字段 ---

	// Rating 是问题的ELO分数，初始为1200
	Rating float64 `json:"rating"`

	// Comparisons 是问题参与的对比投票总次数，单调不减
	Comparisons int `json:"comparisons"`

	// Rank 是问题在上次快照时的排名
	Rank int `gorm:"index"`

	// Status 是问题的生命周期状态。问题从不硬删除，只做状态变更。
	Status QuestionStatus `json:"status"`
}

// Scale 描述一个问题声明的答案量表 [Min, Max]。
type Scale struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Range 返回量表上两个答案之间可能的最大距离。
func (s Scale) Range() float64 {
	return s.Max - s.Min
}
