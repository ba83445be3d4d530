package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/puassist/backend/internal/infrastructure/config"
	applog "github.com/puassist/backend/internal/infrastructure/log"
	"github.com/puassist/backend/internal/infrastructure/singleton"
	"github.com/puassist/backend/internal/wire"
)

func main() {
	// 初始化日志系统
	applog.Init(nil)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 单例锁检查：尝试获取端口锁
	listener, err := singleton.CheckAndLock(cfg.Server.HTTPPort)
	if err != nil {
		log.Fatalf("singleton check failed: %v", err)
	}
	if listener == nil {
		log.Println("another instance is already running, exiting")
		os.Exit(0)
	}
	// 关闭临时 listener，实际监听由 HTTP 服务器负责
	_ = listener.Close()

	app, cleanup, err := wire.InitializeAll()
	if err != nil {
		applog.GetLogger().Error("Failed to initialize application",
			"error", err,
		)
		os.Exit(1)
	}
	defer cleanup()

	if err := app.Start(); err != nil {
		applog.GetLogger().Error("Failed to start application",
			"error", err,
		)
		os.Exit(1)
	}

	// 优雅关闭
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	applog.GetLogger().Info("Shutting down application...")
	if err := app.Stop(); err != nil {
		applog.GetLogger().Error("Error during application shutdown",
			"error", err,
		)
	}
	applog.GetLogger().Info("Application stopped")
}
