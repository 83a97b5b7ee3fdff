package health

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/startup"
	"github.com/vaalikone-dev/vaalikone-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

var runIDPattern = regexp.MustCompile(`run_id:([a-f0-9]+)`)

// observeRunID 通过INFO server读取Redis实例的run_id。
// run_id在Redis每次重启后都会变化，是检测"Redis重启导致热数据丢失"的依据。
func observeRunID() (string, error) {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()

	info, err := database.RDB.Info(ctx, "server").Result()
	if err != nil {
		return "", err
	}
	m := runIDPattern.FindStringSubmatch(info)
	if len(m) < 2 {
		return "", fmt.Errorf("Redis INFO中没有run_id字段")
	}
	return m[1], nil
}

// InitializeRunID 在启动时阻塞式地记录初始run_id。拿不到说明Redis不可用，直接终止启动。
func InitializeRunID() {
	fmt.Println("正在获取初始Redis Run ID...")
	runID, err := observeRunID()
	if err != nil {
		panic(fmt.Sprintf("无法在启动时获取Redis Run ID，请检查Redis服务: %v", err))
	}
	database.SetInitialRunID(runID)
	fmt.Printf("获取初始Redis Run ID成功: %s\n", runID)
}

// PerformCheck 执行一次健康检查。
// 三种结局: Redis不可达 -> 标记不可用；run_id变化 -> 热数据已丢失，
// 触发重建并校验重建期间没有再次重启；run_id未变 -> 一切正常。
func PerformCheck() {
	observedRunID, err := observeRunID()
	if err != nil {
		database.UpdateStatus(false, "")
		return
	}

	if observedRunID == database.GetLastKnownRunID() {
		database.UpdateStatus(true, observedRunID)
		return
	}

	fmt.Printf("健康检查: 检测到Redis重启 (run_id: %s)，正在触发缓存热重建...\n", observedRunID)
	if rebuildAndVerify(observedRunID) {
		database.UpdateStatus(true, observedRunID)
	} else {
		// 重建失败，保持不可用；下一轮检查会再次尝试
		database.UpdateStatus(false, "")
	}
}

// rebuildAndVerify 重建缓存并确认重建期间Redis没有再次重启。
// 重建过程中再次重启会让刚写入的数据再次丢失，这种重建必须作废。
func rebuildAndVerify(idBeforeRebuild string) bool {
	if err := startup.RebuildCache(); err != nil {
		fmt.Printf("健康检查错误: 缓存热重建失败: %v\n", err)
		return false
	}

	idAfterRebuild, err := observeRunID()
	if err != nil {
		fmt.Println("健康检查错误: 缓存重建后无法连接到Redis，重建无效。")
		return false
	}
	if idAfterRebuild != idBeforeRebuild {
		fmt.Printf("健康检查错误: 缓存重建期间Redis再次重启 (run_id: %s -> %s)，重建无效。\n", idBeforeRebuild, idAfterRebuild)
		return false
	}

	fmt.Println("健康检查: 缓存热重建成功并通过原子性校验。")
	return true
}

// StartRedisHealthCheck 周期性地执行健康检查，直到收到停机信号。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("Redis健康检查器已启动。")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("Redis健康检查器已停止。")
			return
		}
		PerformCheck()
	}
}
