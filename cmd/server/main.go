package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MillennialCoin69/Main/api"
	"github.com/MillennialCoin69/Main/internal/leaderboard"
	"github.com/MillennialCoin69/Main/internal/platform/config"
	"github.com/MillennialCoin69/Main/internal/platform/database"
	"github.com/MillennialCoin69/Main/internal/platform/health"
	"github.com/MillennialCoin69/Main/internal/platform/shutdown"
	"github.com/MillennialCoin69/Main/internal/platform/startup"
	"github.com/MillennialCoin69/Main/internal/window"
	"github.com/MillennialCoin69/Main/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env文件是可选的，主要用于本地开发时覆盖Redis地址等配置
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 1. 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 2. 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(cfg); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 3. 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 4. 异步启动后台的持续健康检查器
	go health.StartRedisHealthCheck()

	// 5. 创建生命周期管理器并启动后台服务
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	refresherHandle, err := gracefulMgr.NewServiceHandle("leaderboard-refresher")
	if err != nil {
		panic(err)
	}
	leaderboard.StartRefresher(refresherHandle, cfg.Leaderboard.RefreshInterval())

	sweeperHandle, err := gracefulMgr.NewServiceHandle("desktop-sweeper")
	if err != nil {
		panic(err)
	}
	window.ManagerInstance().StartSweeper(sweeperHandle)

	// 6. 创建Gin引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 桌面图标等静态资源
	r.Static("/assets/icons", "./assets/icons")

	api.SetupRoutes(r)

	// 7. 启动服务器并等待停机信号
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

	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
