package router

import (
	"github.com/YatharthAndharia/Launchpad/internal/handler"
	"github.com/YatharthAndharia/Launchpad/internal/logic"
	"github.com/gin-gonic/gin"
)

func Setup(env *logic.Env) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "launchpad",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		projectHandler := handler.NewProjectHandler(env)
		investHandler := handler.NewInvestHandler(env)
		settlementHandler := handler.NewSettlementHandler(env)
		adminHandler := handler.NewAdminHandler(env)

		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.ListProject)
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/stats", projectHandler.GetProjectStats)
			projects.GET("/:id/total-raised", projectHandler.GetTotalRaised)
			projects.GET("/:id/events", projectHandler.GetProjectEvents)
			projects.GET("/:id/whitelist", projectHandler.GetWhitelist)
			projects.POST("/:id/whitelist", projectHandler.AddWhitelistUser)
			projects.POST("/:id/cancel", projectHandler.CancelProject)

			projects.POST("/:id/invest", investHandler.Invest)
			projects.GET("/:id/investments", investHandler.GetInvestments)
			projects.GET("/:id/investments/:address", investHandler.GetUserInvestment)

			projects.POST("/:id/claim", settlementHandler.ClaimTokens)
			projects.POST("/:id/refund", settlementHandler.RefundTokens)
			projects.POST("/:id/withdraw", settlementHandler.WithdrawAmountRaised)
			projects.POST("/:id/sweep", settlementHandler.Sweep)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/state", adminHandler.GetState)
			admin.POST("/change", adminHandler.ChangeAdmin)
			admin.POST("/pause", adminHandler.Pause)
			admin.POST("/unpause", adminHandler.Unpause)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
