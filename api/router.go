package api

import (
	"github.com/MillennialCoin69/Main/internal/leaderboard"
	"github.com/MillennialCoin69/Main/internal/user"
	"github.com/MillennialCoin69/Main/internal/window"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 桌面相关的路由组 /api/desktop
		// 所有桌面操作都以用户Cookie标识的会话为单位
		desktopRoutes := api.Group("/desktop", user.EnsureUserCookieMiddleware())
		{
			desktopRoutes.GET("/panels", window.ListPanels)
			desktopRoutes.GET("/windows", window.ListWindows)
			desktopRoutes.POST("/windows/open", window.OpenWindow)
			desktopRoutes.POST("/windows/:id/close", window.CloseWindow)
			desktopRoutes.POST("/windows/:id/minimize", window.MinimizeWindow)
			desktopRoutes.POST("/windows/:id/restore", window.RestoreWindow)
			desktopRoutes.GET("/taskbar", window.GetTaskbar)
			desktopRoutes.POST("/start-menu/toggle", window.ToggleStartMenu)
		}

		// 排行榜相关的路由组 /api/leaderboard
		leaderboardRoutes := api.Group("/leaderboard")
		{
			leaderboardRoutes.GET("", leaderboard.GetLeaderboard)
			leaderboardRoutes.POST("/score", user.EnsureUserCookieMiddleware(), leaderboard.SubmitScoreHandler)
			leaderboardRoutes.GET("/highscore", user.EnsureUserCookieMiddleware(), leaderboard.CheckHighScore)
			leaderboardRoutes.GET("/rank", leaderboard.GetRank)
			leaderboardRoutes.GET("/personal-best", user.LoadUserMiddleware(), leaderboard.GetPersonalBest)
		}
	}
}
