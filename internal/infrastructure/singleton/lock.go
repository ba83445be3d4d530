// Package singleton 通过端口占用保证同一主机只运行一个服务实例
package singleton

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
)

// HealthCheckTimeout 健康检查超时时间
const HealthCheckTimeout = 2 * time.Second

// ErrPortBusy 端口被其他进程占用且不是健康的实例
var ErrPortBusy = errors.New("port in use by an unhealthy process")

// CheckAndLock 尝试占用端口
// 端口可用时返回 listener；已有健康实例在运行时返回 nil, nil，调用者应退出
func CheckAndLock(addr string) (net.Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err == nil {
		return listener, nil
	}
	if !isAddrInUse(err) {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	if isInstanceRunning(addr) {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrPortBusy, addr)
}

func isAddrInUse(err error) bool {
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	// Windows: WSAEADDRINUSE
	var errno syscall.Errno
	if errors.As(err, &errno) && errno == 10048 {
		return true
	}
	return strings.Contains(err.Error(), "address already in use")
}

// isInstanceRunning 端口上的进程是否响应 /health
func isInstanceRunning(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}

	resp, err := resty.New().
		SetTimeout(HealthCheckTimeout).
		R().
		Get(fmt.Sprintf("http://%s/health", net.JoinHostPort(host, port)))
	if err != nil {
		return false
	}
	return resp.StatusCode() == 200
}
