package router

import (
	"time"

	"oshilog/api"
	"oshilog/config"
	_ "oshilog/docs"
	"oshilog/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)
		}

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 类别词表
			categoryHandler := api.NewCategoryHandler()
			authorized.GET("/categories", categoryHandler.List)

			// 推し管理
			oshiHandler := api.NewOshiHandler()
			oshiGroup := authorized.Group("/oshi")
			{
				oshiGroup.GET("", oshiHandler.List)
				oshiGroup.POST("", oshiHandler.Create)
				oshiGroup.PUT("/:id", oshiHandler.Update)
				oshiGroup.DELETE("/:id", oshiHandler.Delete)
			}

			// 标签管理
			tagHandler := api.NewTagHandler()
			tags := authorized.Group("/tags")
			{
				tags.GET("", tagHandler.List)
				tags.POST("", tagHandler.Create)
				tags.PUT("/:id", tagHandler.Update)
				tags.DELETE("/:id", tagHandler.Delete)
			}

			// 收支记录
			transactionHandler := api.NewTransactionHandler()
			transactions := authorized.Group("/transactions")
			{
				transactions.GET("", transactionHandler.List)
				transactions.POST("", transactionHandler.Create)
				transactions.PUT("/:id", transactionHandler.Update)
				transactions.DELETE("/:id", transactionHandler.Delete)
			}

			// 定期收支规则
			recurringHandler := api.NewRecurringHandler()
			recurring := authorized.Group("/recurring")
			{
				recurring.GET("", recurringHandler.List)
				recurring.POST("", recurringHandler.Create)
				recurring.PUT("/:id", recurringHandler.Update)
				recurring.DELETE("/:id", recurringHandler.Delete)
				recurring.POST("/:id/materialize", recurringHandler.Materialize)
			}

			// 预定收支与状态迁移
			scheduledHandler := api.NewScheduledHandler()
			scheduled := authorized.Group("/scheduled")
			{
				scheduled.GET("", scheduledHandler.List)
				scheduled.POST("", scheduledHandler.Create)
				scheduled.PUT("/:id", scheduledHandler.Update)
				scheduled.POST("/:id/confirm", scheduledHandler.Confirm)
				scheduled.POST("/:id/complete", scheduledHandler.Complete)
				scheduled.POST("/:id/cancel", scheduledHandler.Cancel)
			}

			// 看板与时间线
			dashboardHandler := api.NewDashboardHandler()
			authorized.GET("/dashboard", dashboardHandler.Dashboard)
			authorized.GET("/timeline", dashboardHandler.Timeline)

			// 支付提醒
			reminderHandler := api.NewReminderHandler()
			reminders := authorized.Group("/reminders")
			{
				reminders.GET("", reminderHandler.List)
				reminders.POST("/send-digest", reminderHandler.SendDigest)
			}

			// 导出相关
			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
			}

			// 订阅计划
			subscriptionHandler := api.NewSubscriptionHandler()
			authorized.GET("/subscription", subscriptionHandler.Get)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
