package lifecycle

import (
	"context"
	"sync"
	"time"
)

// Handle 是分发给单个后台服务的生命周期句柄。
// 服务通过它感知停机信号，并在退出前调用Close向管理器回报。
type Handle struct {
	ctx       context.Context
	closeOnce sync.Once
	release   func()
}

// Ctx 返回句柄关联的上下文，可直接传给需要context的下游调用。
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 返回的channel在管理器广播停机信号时关闭，供select使用。
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 在停机信号发出后返回取消原因。
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Close 通知管理器该服务已经退出。重复调用是安全的。
// 服务的Goroutine应该在入口处defer它。
func (h *Handle) Close() {
	h.closeOnce.Do(h.release)
}

// Sleep 休眠指定时长；收到停机信号时提前返回取消错误。
// 后台定时循环应该用它代替time.Sleep。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-h.Done():
		return h.Err()
	case <-timer.C:
		return nil
	}
}
