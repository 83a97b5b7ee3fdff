package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
)

// --- Redis-specific Definitions ---
// 这些定义归属于仓库，因为它们描述了仓库所管理的外部动态数据结构

const (
	// InfoKey 是一个Redis Hash，存储所有问题的静态数据
	InfoKey = "question_info"
	// StatsKey 是一个Redis Hash，存储所有问题的动态统计数据
	StatsKey = "question_stats"
	// RankingKey 是一个Redis Sorted Set，用于按分数实时排序问题
	RankingKey = "question_ranking"
)

// QuestionInfo 定义了在Redis question_info Hash中存储的问题静态数据
type QuestionInfo struct {
	TextFi   string         `json:"textFi"`
	TextEn   string         `json:"textEn"`
	Category string         `json:"category"`
	Tags     []string       `json:"tags"`
	Scale    Scale          `json:"scale"`
	Status   QuestionStatus `json:"status"`
}

// QuestionStats 定义了在Redis question_stats Hash中存储的问题动态数据
type QuestionStats struct {
	Rating      float64 `json:"rating"`
	Comparisons int     `json:"comparisons"`
}

// --- In-memory Repository ---

// repository 是question模块的中央内存仓库。
// 静态数据在启动时从SQLite加载，之后只会因新问题被接纳而增长。
type repository struct {
	mu        sync.RWMutex
	idToIndex map[string]int
	ids       []string
	infos     []QuestionInfo
}

// globalRepository 是仓库的私有单例实例
var globalRepository *repository

// InitializeRepository 从SQLite加载静态问题数据，初始化内存仓库。
// 这个函数应该在应用启动时且仅调用一次。
func InitializeRepository() error {
	var questionsFromDB []Question
	if err := database.DB.Order("id asc").Find(&questionsFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载问题静态数据: %w", err)
	}

	repo := &repository{
		idToIndex: make(map[string]int, len(questionsFromDB)),
	}
	for _, q := range questionsFromDB {
		repo.appendLocked(q.QuestionID, infoFromModel(q))
	}
	globalRepository = repo

	fmt.Printf("问题仓库 (Repository) 初始化成功，加载了 %d 个问题。\n", len(questionsFromDB))
	return nil
}

// infoFromModel 将SQLite模型转换为仓库/Redis使用的静态信息
func infoFromModel(q Question) QuestionInfo {
	var tags []string
	if q.Tags != "" {
		_ = json.Unmarshal([]byte(q.Tags), &tags)
	}
	return QuestionInfo{
		TextFi:   q.TextFi,
		TextEn:   q.TextEn,
		Category: q.Category,
		Tags:     tags,
		Scale:    Scale{Min: q.ScaleMin, Max: q.ScaleMax},
		Status:   q.Status,
	}
}

// appendLocked 在已持有写锁（或单线程启动期）时向仓库追加一个问题
func (r *repository) appendLocked(id string, info QuestionInfo) {
	r.idToIndex[id] = len(r.ids)
	r.ids = append(r.ids, id)
	r.infos = append(r.infos, info)
}

// AddToRepository 在运行时向仓库追加一个新被接纳的问题。
func AddToRepository(q Question) {
	globalRepository.mu.Lock()
	defer globalRepository.mu.Unlock()
	if _, exists := globalRepository.idToIndex[q.QuestionID]; exists {
		return
	}
	globalRepository.appendLocked(q.QuestionID, infoFromModel(q))
}

// GetQuestionCount 返回仓库中的问题数量
func GetQuestionCount() int {
	if globalRepository == nil {
		return 0
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	return len(globalRepository.ids)
}

// GetQuestionInfoByID 返回单个问题的静态数据
func GetQuestionInfoByID(id string) (QuestionInfo, bool) {
	if globalRepository == nil {
		return QuestionInfo{}, false
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	index, ok := globalRepository.idToIndex[id]
	if !ok {
		return QuestionInfo{}, false
	}
	return globalRepository.infos[index], true
}

// GetScaleByID 返回单个问题声明的量表
func GetScaleByID(id string) (Scale, bool) {
	info, ok := GetQuestionInfoByID(id)
	if !ok {
		return Scale{}, false
	}
	return info.Scale, true
}

// GetAllScales 返回所有问题的量表，供兼容度计算使用
func GetAllScales() map[string]Scale {
	if globalRepository == nil {
		return nil
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	scales := make(map[string]Scale, len(globalRepository.ids))
	for i, id := range globalRepository.ids {
		scales[id] = globalRepository.infos[i].Scale
	}
	return scales
}

// GetExistingQuestionTexts 返回指定语言的全部问题文本，供重复检测使用。
// locale 取 "fi" 或 "en"；文本为空的问题被跳过。
func GetExistingQuestionTexts(locale string) []ExistingQuestion {
	if globalRepository == nil {
		return nil
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()

	existing := make([]ExistingQuestion, 0, len(globalRepository.ids))
	for i, id := range globalRepository.ids {
		text := globalRepository.infos[i].TextFi
		if locale == "en" {
			text = globalRepository.infos[i].TextEn
		}
		if text == "" {
			continue
		}
		existing = append(existing, ExistingQuestion{QuestionID: id, Text: text})
	}
	return existing
}
