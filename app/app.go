package app

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"libkiosk/db"
	"libkiosk/models"
	"libkiosk/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Shorthand for handlers.
type Ctx = gin.Context
type H = gin.H

// App aggregates the process-wide dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	refresh *session.RefreshStore
}

type Config struct {
	WebOrigin     string
	JWTSecret     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	AdminEmail    string
	AdminPassword string
	SeedDemoData  bool
	Rules         models.LoanRules
}

func (a *App) RefreshTokens() *session.RefreshStore { return a.refresh }

func MustNew() *App {
	cfg := loadConfig()

	// --- DB: Postgres ---
	dbConn := db.ConnectDB()

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router:  r,
		DB:      dbConn,
		RDB:     rdb,
		Config:  cfg,
		refresh: session.NewRefreshStore(rdb, cfg.RefreshTTL),
	}
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	accessMin := getEnvInt("ACCESS_TTL_MINUTES", 30)
	refreshDays := getEnvInt("REFRESH_TTL_DAYS", 7)

	rules := models.DefaultLoanRules()
	rules.LoanDays = getEnvInt("LOAN_DAYS", rules.LoanDays)
	rules.ExtensionDays = getEnvInt("EXTENSION_DAYS", rules.ExtensionDays)
	rules.MaxExtensions = getEnvInt("MAX_EXTENSIONS", rules.MaxExtensions)
	rules.MaxBooksPerUser = getEnvInt("MAX_BOOKS_PER_USER", rules.MaxBooksPerUser)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-in-production"
		log.Println("JWT_SECRET not set, using development default")
	}

	return Config{
		WebOrigin:     getEnv("WEB_ORIGIN", "http://localhost:5173"),
		JWTSecret:     secret,
		AccessTTL:     time.Duration(accessMin) * time.Minute,
		RefreshTTL:    time.Duration(refreshDays) * 24 * time.Hour,
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@uai.edu"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		SeedDemoData:  os.Getenv("SEED_DEMO_DATA") == "true",
		Rules:         rules,
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
