package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/warung-pos/config"
	"github.com/yeremiapane/warung-pos/database"
	"github.com/yeremiapane/warung-pos/kds"
	"github.com/yeremiapane/warung-pos/router"
	"github.com/yeremiapane/warung-pos/services"
	"github.com/yeremiapane/warung-pos/utils"
	"gorm.io/gorm"
)

// Sesi kasir yang ditinggal lebih lama dari ini dibuang
const sessionMaxIdle = 12 * time.Hour

func init() {
	utils.InitLogger()

	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Warnf(".env file not found or error loading: %v", err)
	}
}

// app adalah semua komponen yang sudah dirangkai, siap dipasang ke http.Server
type app struct {
	router  *gin.Engine
	hub     *kds.Hub
	store   *services.AppStore
	ticker  *services.ElapsedTicker
	cashier *services.CashierService
	queue   *services.QueueService
	days    *services.BusinessDayService
}

// newApp memigrasi & seed database, memuat data lalu merangkai service dan router
func newApp(cfg *config.Config, db *gorm.DB) (*app, error) {
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	if err := database.Seed(db, database.SeedPasswords{
		Admin:   cfg.SeedAdminPassword,
		Cashier: cfg.SeedCashierPassword,
		Kitchen: cfg.SeedKitchenPassword,
	}); err != nil {
		return nil, err
	}

	repo := services.NewGormRepository(db)
	hub := kds.NewHub(utils.InfoLogger)
	store := services.NewAppStore(repo, hub)
	if err := store.Load(context.Background()); err != nil {
		return nil, err
	}

	a := &app{
		hub:   hub,
		store: store,
		days:  services.NewBusinessDayService(db, cfg.CutoffHour, cfg.Location),
	}
	a.ticker = services.NewElapsedTicker(store, cfg.QueueTick, utils.InfoLogger)
	a.cashier = services.NewCashierService(store, a.days)
	a.queue = services.NewQueueService(store, a.days)

	a.router = router.SetupRouter(router.Dependencies{
		DB:          db,
		Hub:         hub,
		Ticker:      a.ticker,
		Cashier:     a.cashier,
		Queue:       a.queue,
		Catalog:     services.NewCatalogService(repo, store),
		Days:        a.days,
		CORSOrigins: cfg.CORS,
		RateLimit:   cfg.RateLimit,
	})
	return a, nil
}

// pruneSessions berjalan sampai ctx selesai
func (a *app) pruneSessions(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if n := a.cashier.PruneSessions(sessionMaxIdle); n > 0 {
				utils.InfoLogger.WithField("sessions", n).Info("pruned idle cashier sessions")
			}
		case <-ctx.Done():
			return
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.SetLogLevel(cfg.LogLevel)
	utils.SetJWTSecret(cfg.JWTSecret)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	a, err := newApp(cfg, db)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to start application: %v", err)
	}
	defer a.ticker.Stop()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go a.pruneSessions(ctx, time.Hour)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: a.router,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}
}
