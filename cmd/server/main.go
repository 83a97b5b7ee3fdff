package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vaalikone-dev/vaalikone-backend/api"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/config"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/database"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/health"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/shutdown"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/startup"
	"github.com/vaalikone-dev/vaalikone-backend/internal/question"
	"github.com/vaalikone-dev/vaalikone-backend/pkg/lifecycle"
	"github.com/vaalikone-dev/vaalikone-backend/pkg/token"
)

func main() {
	token.GenerateSecretKey()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 创建两阶段停机的生命周期管理器
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	// 异步启动后台服务
	healthHandle, err := gracefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(fmt.Sprintf("无法创建健康检查服务句柄: %v", err))
	}
	go health.StartRedisHealthCheck(healthHandle)

	backupHandle, err := gracefulMgr.NewServiceHandle("snapshot-scheduler")
	if err != nil {
		panic(fmt.Sprintf("无法创建快照服务句柄: %v", err))
	}
	go question.StartBackupScheduler(backupHandle)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 阻塞在停机协调器上，直到收到关闭信号并完成停机流程
	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
