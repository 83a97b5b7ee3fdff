package candidate

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
)

// CandidateInfo 持有候选人的静态数据和已解码的答案，启动时加载到内存。
// 候选人集合在运行期间只读；兼容度计算直接在这些内存数据上进行。
type CandidateInfo struct {
	CandidateID    string
	Name           string
	Party          string
	Description    string
	Email          string
	Website        string
	Answers        map[string]float64
	Justifications map[string]string
}

// repository 是candidate模块的中央内存仓库
type repository struct {
	mu        sync.RWMutex
	idToIndex map[string]int
	infos     []CandidateInfo
	// partyIndex 是从政党名到候选人下标集合的派生索引。
	// 它在加载时重算，政党永远不是独立存储的实体。
	partyIndex map[string][]int
}

// globalRepository 是仓库的私有单例实例
var globalRepository *repository

// InitializeRepository 从SQLite加载候选人数据并重建政党派生索引。
// 这个函数应该在应用启动时调用；重新导入候选人后可以再次调用以刷新。
func InitializeRepository() error {
	var candidatesFromDB []Candidate
	if err := database.DB.Order("id asc").Find(&candidatesFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载候选人数据: %w", err)
	}

	repo := &repository{
		idToIndex:  make(map[string]int, len(candidatesFromDB)),
		infos:      make([]CandidateInfo, 0, len(candidatesFromDB)),
		partyIndex: make(map[string][]int),
	}

	for i, c := range candidatesFromDB {
		repo.idToIndex[c.CandidateID] = i
		repo.infos = append(repo.infos, CandidateInfo{
			CandidateID:    c.CandidateID,
			Name:           c.Name,
			Party:          c.Party,
			Description:    c.Description,
			Email:          c.Email,
			Website:        c.Website,
			Answers:        c.AnswersMap(),
			Justifications: c.JustificationsMap(),
		})
		if c.Party != "" {
			repo.partyIndex[c.Party] = append(repo.partyIndex[c.Party], i)
		}
	}

	globalRepository = repo
	fmt.Printf("候选人仓库 (Repository) 初始化成功，加载了 %d 个候选人，%d 个政党。\n",
		len(repo.infos), len(repo.partyIndex))
	return nil
}

// GetCandidateCount 返回仓库中的候选人数量
func GetCandidateCount() int {
	if globalRepository == nil {
		return 0
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	return len(globalRepository.infos)
}

// GetAllCandidates 按加载顺序返回所有候选人
func GetAllCandidates() []CandidateInfo {
	if globalRepository == nil {
		return nil
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	out := make([]CandidateInfo, len(globalRepository.infos))
	copy(out, globalRepository.infos)
	return out
}

// GetCandidateByID 返回单个候选人的数据
func GetCandidateByID(id string) (CandidateInfo, bool) {
	if globalRepository == nil {
		return CandidateInfo{}, false
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	index, ok := globalRepository.idToIndex[id]
	if !ok {
		return CandidateInfo{}, false
	}
	return globalRepository.infos[index], true
}

// GetPartyNames 返回所有政党名，按字典序排列以保证输出稳定
func GetPartyNames() []string {
	if globalRepository == nil {
		return nil
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	names := make([]string, 0, len(globalRepository.partyIndex))
	for name := range globalRepository.partyIndex {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCandidatesByParty 按加载顺序返回指定政党的所有候选人
func GetCandidatesByParty(party string) []CandidateInfo {
	if globalRepository == nil {
		return nil
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	indices, ok := globalRepository.partyIndex[party]
	if !ok {
		return nil
	}
	out := make([]CandidateInfo, 0, len(indices))
	for _, i := range indices {
		out = append(out, globalRepository.infos[i])
	}
	return out
}
