package shutdown

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaalikone-dev/vaalikone-backend/internal/question"
	"github.com/vaalikone-dev/vaalikone-backend/pkg/lifecycle"
)

const (
	httpShutdownTimeout = 15 * time.Second
	gracefulTimeout     = 30 * time.Second
	forcefulTimeout     = 1 * time.Second
)

// Coordinator 编排应用的两阶段优雅停机：
// 先关闭HTTP入口，再通知后台服务优雅退出，超时后升级为强制信号，
// 最后执行一次收尾快照把Redis中的评分状态落回SQLite。
type Coordinator struct {
	gracefulMgr *lifecycle.Manager
	forcefulMgr *lifecycle.Manager
}

// NewCoordinator 创建一个停机协调器。
func NewCoordinator(gracefulMgr, forcefulMgr *lifecycle.Manager) *Coordinator {
	return &Coordinator{gracefulMgr: gracefulMgr, forcefulMgr: forcefulMgr}
}

// ListenForSignalsAndShutdown 阻塞等待停机信号，随后执行完整的停机流程。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\n收到关闭信号，开始优雅停机...")

	c.stopHTTPServer(server)
	c.stopBackgroundServices()
	c.finalSnapshot()

	fmt.Println("优雅停机完成。")
}

// stopHTTPServer 关闭HTTP服务器，允许正在处理的请求在限期内完成
func (c *Coordinator) stopHTTPServer(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Printf("HTTP服务器关闭错误: %v\n", err)
		return
	}
	fmt.Println("HTTP服务器已关闭。")
}

// stopBackgroundServices 执行两阶段的后台服务停机
func (c *Coordinator) stopBackgroundServices() {
	fmt.Printf("第一阶段停机：等待最多 %v 以完成任务...\n", gracefulTimeout)
	c.gracefulMgr.Shutdown()

	stragglers := c.gracefulMgr.WaitWithTimeout(gracefulTimeout)
	if len(stragglers) == 0 {
		fmt.Println("所有服务已在第一阶段优雅关闭。")
		return
	}

	// 第二阶段: 强制信号意味着服务循环应该立刻退出，不再执行任何操作
	fmt.Printf("第一阶段超时 (未退出: %v)。发送强制停机信号 (最多等待 %v)...\n", stragglers, forcefulTimeout)
	c.forcefulMgr.Shutdown()
	c.forcefulMgr.WaitWithTimeout(forcefulTimeout)
}

// finalSnapshot 在进程退出前把最新的评分状态写回SQLite
func (c *Coordinator) finalSnapshot() {
	fmt.Println("正在执行最终快照...")
	if err := question.CreateConsistentSnapshotInDB(context.Background()); err != nil {
		fmt.Printf("最终快照失败: %v\n", err)
		return
	}
	fmt.Println("最终快照成功。")
}
