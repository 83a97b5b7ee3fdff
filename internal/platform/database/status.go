package database

import (
	"fmt"
	"sync"
)

// redisStatus 记录Redis的可用性和最近一次观察到的run_id。
// 投票和备份路径在写入前通过它决定是否跳过Redis操作。
type redisStatus struct {
	mu      sync.RWMutex
	healthy bool
	runID   string
}

// 启动流程会在进入服务循环前先做一次阻塞式检查，因此初始值即为健康
var currentStatus = &redisStatus{healthy: true}

// IsRedisHealthy 返回当前Redis的健康状态。
func IsRedisHealthy() bool {
	currentStatus.mu.RLock()
	defer currentStatus.mu.RUnlock()
	return currentStatus.healthy
}

// SetInitialRunID 在应用启动时设置初始的Redis run_id。
func SetInitialRunID(runID string) {
	currentStatus.mu.Lock()
	defer currentStatus.mu.Unlock()
	currentStatus.runID = runID
}

// UpdateStatus 根据最近一次健康检查的结果更新状态。
// 状态翻转时打印一条日志；run_id只在Redis可用时才被采信。
func UpdateStatus(isHealthy bool, newRunID string) {
	currentStatus.mu.Lock()
	defer currentStatus.mu.Unlock()

	if currentStatus.healthy != isHealthy {
		currentStatus.healthy = isHealthy
		if isHealthy {
			fmt.Println("健康检查: Redis服务状态已更新为 [可用]")
		} else {
			fmt.Println("健康检查警告: Redis服务状态已更新为 [不可用]")
		}
	}

	if isHealthy {
		currentStatus.runID = newRunID
	}
}

// GetLastKnownRunID 返回最近一次确认过的Redis run_id。
func GetLastKnownRunID() string {
	currentStatus.mu.RLock()
	defer currentStatus.mu.RUnlock()
	return currentStatus.runID
}
