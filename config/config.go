package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	// zona waktu tetap tersedia di image tanpa tzdata
	_ "time/tzdata"

	"github.com/yeremiapane/warung-pos/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port       string
	GinMode    string
	LogLevel   string
	DBDriver   string
	DBDSN      string
	JWTSecret  string
	CutoffHour int
	Location   *time.Location
	CORS       []string
	QueueTick  time.Duration
	// RateLimit -> request per detik per IP, 0 mematikan limiter global
	RateLimit int

	SeedAdminPassword   string
	SeedCashierPassword string
	SeedKitchenPassword string
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

// Load membaca konfigurasi dari environment (.env sudah di-load oleh main)
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:      getEnv("DB_DSN", "warung.db"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		CutoffHour: getEnvInt("BUSINESS_DAY_CUTOFF_HOUR", 4),
		QueueTick:  time.Duration(getEnvInt("QUEUE_TICK_SECONDS", 60)) * time.Second,
		RateLimit:  getEnvInt("RATE_LIMIT_PER_SECOND", 50),

		SeedAdminPassword:   getEnv("SEED_ADMIN_PASSWORD", "admin123"),
		SeedCashierPassword: getEnv("SEED_CASHIER_PASSWORD", "kasir123"),
		SeedKitchenPassword: getEnv("SEED_KITCHEN_PASSWORD", "dapur123"),
	}

	if cfg.CutoffHour < 0 || cfg.CutoffHour > 23 {
		return nil, fmt.Errorf("BUSINESS_DAY_CUTOFF_HOUR harus 0-23, dapat %d", cfg.CutoffHour)
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE tidak valid: %w", err)
	}
	cfg.Location = loc

	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORS = append(cfg.CORS, o)
			}
		}
	}

	switch cfg.DBDriver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("DB_DRIVER tidak dikenal: %s", cfg.DBDriver)
	}

	return cfg, nil
}

// InitDB membuka koneksi gorm sesuai DB_DRIVER
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBDSN)
	}

	logLevel := logger.Warn
	if cfg.GinMode == "release" {
		logLevel = logger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == "mysql" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	utils.InfoLogger.WithField("driver", cfg.DBDriver).Info("database connected")
	return db, nil
}
