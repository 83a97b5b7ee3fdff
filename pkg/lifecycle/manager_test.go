package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManagerShutdownWakesSleepingService(t *testing.T) {
	m := NewManager()
	handle, err := m.NewServiceHandle("test-service")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		defer handle.Close()
		done <- handle.Sleep(10 * time.Second)
	}()

	m.Shutdown()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("服务没有在停机信号后及时从休眠中唤醒")
	}

	require.Empty(t, m.WaitWithTimeout(time.Second))
}

func TestManagerRejectsDuplicateService(t *testing.T) {
	m := NewManager()
	_, err := m.NewServiceHandle("dup")
	require.NoError(t, err)
	_, err = m.NewServiceHandle("dup")
	require.Error(t, err)
}

func TestManagerWaitTimeoutReportsStragglers(t *testing.T) {
	m := NewManager()
	_, err := m.NewServiceHandle("straggler")
	require.NoError(t, err)

	m.Shutdown()
	remaining := m.WaitWithTimeout(50 * time.Millisecond)
	require.Equal(t, []string{"straggler"}, remaining)
}

func TestHandleCloseIsIdempotent(t *testing.T) {
	m := NewManager()
	handle, err := m.NewServiceHandle("svc")
	require.NoError(t, err)

	handle.Close()
	handle.Close() // 二次调用不应panic或使计数出错

	require.Empty(t, m.WaitWithTimeout(time.Second))
}
