package candidate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
	"gorm.io/gorm/clause"
)

// seedFilePath 是启动时候选人种子数据的默认位置
const seedFilePath = "data/candidates.json"

// PrimeCachedDB 负责初始化candidate模块：迁移表结构、导入种子数据、加载内存仓库
func PrimeCachedDB() error {
	if err := database.DB.AutoMigrate(&Candidate{}); err != nil {
		return fmt.Errorf("无法迁移candidate表: %w", err)
	}
	fmt.Println("Candidate数据库表迁移成功。")

	if err := importSeedIfEmpty(); err != nil {
		return err
	}

	return InitializeRepository()
}

// seedCandidate 对应种子JSON文件中的一条候选人记录
type seedCandidate struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Party          string             `json:"party"`
	Description    string             `json:"description"`
	Email          string             `json:"email"`
	Website        string             `json:"website"`
	Answers        map[string]float64 `json:"answers"`
	Justifications map[string]string  `json:"justifications"`
}

// importSeedIfEmpty 在candidate表为空时，从种子文件导入候选人数据。
// 种子文件不存在不是错误——系统可以在没有候选人的状态下运行问题排名功能。
func importSeedIfEmpty() error {
	var count int64
	if err := database.DB.Model(&Candidate{}).Count(&count).Error; err != nil {
		return fmt.Errorf("无法统计候选人数量: %w", err)
	}
	if count > 0 {
		return nil
	}

	raw, err := os.ReadFile(seedFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("未找到候选人种子文件，跳过导入。")
			return nil
		}
		return fmt.Errorf("无法读取候选人种子文件: %w", err)
	}

	var seeds []seedCandidate
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("无法解析候选人种子文件: %w", err)
	}

	candidates := make([]Candidate, 0, len(seeds))
	for _, s := range seeds {
		if s.ID == "" || s.Name == "" {
			fmt.Printf("种子导入警告: 跳过缺少ID或姓名的候选人记录。\n")
			continue
		}
		answersJSON, _ := json.Marshal(s.Answers)
		justificationsJSON, _ := json.Marshal(s.Justifications)
		candidates = append(candidates, Candidate{
			CandidateID:    s.ID,
			Name:           s.Name,
			Party:          s.Party,
			Description:    s.Description,
			Email:          s.Email,
			Website:        s.Website,
			Answers:        string(answersJSON),
			Justifications: string(justificationsJSON),
		})
	}
	if len(candidates) == 0 {
		return nil
	}

	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&candidates).Error; err != nil {
		return fmt.Errorf("无法导入候选人种子数据: %w", err)
	}
	fmt.Printf("成功导入 %d 个候选人。\n", len(candidates))
	return nil
}
