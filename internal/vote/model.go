package vote

import (
	"gorm.io/gorm"
)

// VoteResult 定义了投票结果的枚举类型
type VoteResult string

const (
	// ResultAWins 表示问题A胜出
	ResultAWins VoteResult = "A_WINS"
	// ResultBWins 表示问题B胜出
	ResultBWins VoteResult = "B_WINS"
	// ResultSkip 表示用户跳过了此轮对比
	ResultSkip VoteResult = "SKIP"
)

// Vote 定义了单次投票记录的数据结构
// 它清晰地记录了参与对比的双方和最终结果。
// 评分更新本身只依赖(胜者, 败者)这一条事件，记录表仅用于快照重放和统计。
type Vote struct {
	gorm.Model

	// QuestionA_ID 是参与对比的第一个问题的ID
	QuestionA_ID string `json:"question_a_id"`

	// QuestionB_ID 是参与对比的第二个问题的ID
	QuestionB_ID string `json:"question_b_id"`

	// Result 记录本次投票的结果
	Result VoteResult `json:"result"`

	// UserIdentifier 是用于识别匿名设备的唯一标识
	UserIdentifier string `json:"user_identifier"`
}
