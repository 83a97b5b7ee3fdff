package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Manager 是一组后台服务的生命周期协调器。
// 上层模块（如shutdown）创建它并向各个后台服务分发句柄。
type Manager struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	running map[string]struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager 创建一个新的生命周期管理器。
func NewManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		running: make(map[string]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// NewServiceHandle 注册一个服务并返回它的生命周期句柄。
// 同名服务只能注册一次。
func (m *Manager) NewServiceHandle(name string) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.running[name]; exists {
		return nil, fmt.Errorf("生命周期管理器: 服务 '%s' 已被注册", name)
	}
	m.running[name] = struct{}{}
	m.wg.Add(1)
	fmt.Printf("生命周期管理器: 服务 [%s] 已注册。\n", name)

	return &Handle{
		ctx: m.ctx,
		release: func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.running, name)
			m.wg.Done()
		},
	}, nil
}

// Shutdown 向所有持有句柄的服务广播停机信号。
func (m *Manager) Shutdown() {
	fmt.Println("生命周期管理器: 广播停机信号...")
	m.cancel()
}

// WaitWithTimeout 等待所有已注册的服务退出，直到超时。
// 返回超时后仍未退出的服务名列表；全部退出时返回nil。
func (m *Manager) WaitWithTimeout(timeout time.Duration) []string {
	allDone := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(allDone)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-allDone:
		return nil
	case <-timer.C:
		m.mu.Lock()
		defer m.mu.Unlock()
		stragglers := make([]string, 0, len(m.running))
		for name := range m.running {
			stragglers = append(stragglers, name)
		}
		return stragglers
	}
}
