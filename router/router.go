package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/warung-pos/controllers"
	"github.com/yeremiapane/warung-pos/kds"
	"github.com/yeremiapane/warung-pos/middlewares"
	"github.com/yeremiapane/warung-pos/models"
	"github.com/yeremiapane/warung-pos/services"
	"gorm.io/gorm"
)

// Dependencies adalah semua komponen yang dirangkai main dan dipakai router
type Dependencies struct {
	DB          *gorm.DB
	Hub         *kds.Hub
	Ticker      *services.ElapsedTicker
	Cashier     *services.CashierService
	Queue       *services.QueueService
	Catalog     *services.CatalogService
	Days        *services.BusinessDayService
	CORSOrigins []string
	// RateLimit -> request per detik per IP, 0 berarti tanpa limit
	RateLimit int
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigins))
	r.Use(middlewares.LoggerMiddleware())
	if deps.RateLimit > 0 {
		r.Use(middlewares.NewRateLimiter(deps.RateLimit, time.Second).RateLimit())
	}

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(deps.DB)
	catalogCtrl := controllers.NewCatalogController(deps.Catalog)
	cashierCtrl := controllers.NewCashierController(deps.Cashier)
	queueCtrl := controllers.NewQueueController(deps.Queue)
	reportCtrl := controllers.NewReportController(deps.Queue, deps.Days)
	kdsCtrl := controllers.NewKDSController(deps.Hub, deps.Ticker)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	loginLimiter := middlewares.NewStrictRateLimiter()
	r.POST("/login", loginLimiter.RateLimit(), userCtrl.Login)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/business-day", reportCtrl.GetBusinessDay)

	// CATALOG (semua role bisa lihat, hanya admin yang bisa ubah)
	auth.GET("/catalog", catalogCtrl.GetCatalog)
	catalogAdmin := auth.Group("/catalog")
	catalogAdmin.Use(middlewares.RequireRoles(models.RoleAdmin))
	{
		catalogAdmin.POST("", catalogCtrl.CreateCatalogItem)
		catalogAdmin.PATCH("/:item_id", catalogCtrl.UpdateCatalogItem)
		catalogAdmin.DELETE("/:item_id", catalogCtrl.DeleteCatalogItem)
	}

	// CASHIER (admin/kasir)
	cashier := auth.Group("/cashier/sessions")
	cashier.Use(middlewares.RequireRoles(models.RoleAdmin, models.RoleCashier))
	{
		cashier.POST("", cashierCtrl.OpenSession)
		cashier.GET("/:session_id", cashierCtrl.GetSession)

		cashier.POST("/:session_id/items", cashierCtrl.SelectItem)
		cashier.PATCH("/:session_id/items/:index", cashierCtrl.SetItemQuantity)
		cashier.POST("/:session_id/items/:index/edit", cashierCtrl.EditLine)
		cashier.PATCH("/:session_id/items/:index/toppings/:topping_index", cashierCtrl.AdjustLineTopping)

		cashier.POST("/:session_id/builder/choice", cashierCtrl.Choose)
		cashier.POST("/:session_id/builder/toppings/:topping_id", cashierCtrl.AdjustBuilderTopping)
		cashier.PUT("/:session_id/builder/toppings/:topping_id", cashierCtrl.SetBuilderTopping)
		cashier.PUT("/:session_id/builder/quantity", cashierCtrl.SetBuilderQuantity)
		cashier.POST("/:session_id/builder/finish", cashierCtrl.FinishBuilder)
		cashier.DELETE("/:session_id/builder", cashierCtrl.CancelBuilder)

		cashier.PATCH("/:session_id/order", cashierCtrl.UpdateOrder)
		cashier.POST("/:session_id/submit", cashierCtrl.Submit)
		cashier.POST("/:session_id/reset", cashierCtrl.Reset)
		cashier.POST("/:session_id/load/:transaction_id", cashierCtrl.LoadTransaction)
	}

	// QUEUE (admin/kasir/dapur)
	queue := auth.Group("/queue")
	queue.Use(middlewares.RequireRoles(models.RoleAdmin, models.RoleCashier, models.RoleKitchen))
	{
		queue.GET("", queueCtrl.GetQueue)
		queue.GET("/report", reportCtrl.GetDayReport)
		queue.GET("/report.pdf", reportCtrl.DownloadDayReportPDF)

		queue.PATCH("/:transaction_id/items/:index/delivered", middlewares.AuditLogger("toggle_delivered"), queueCtrl.ToggleDelivered)
		queue.POST("/:transaction_id/deliver-all", middlewares.AuditLogger("deliver_all"), queueCtrl.DeliverAll)
		queue.DELETE("/:transaction_id", middlewares.AuditLogger("cancel"), queueCtrl.CancelTransaction)
		queue.POST("/close-day", middlewares.AuditLogger("close_day"), queueCtrl.CloseDay)
	}

	auth.GET("/closed-days", middlewares.RequireRoles(models.RoleAdmin), reportCtrl.GetClosedDays)

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", kdsCtrl.KDSHandler)
	}

	return r
}
