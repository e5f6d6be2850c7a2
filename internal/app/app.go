package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/myproparti-blip/My-pro-backend/database"
	"github.com/myproparti-blip/My-pro-backend/internal/config"
	"github.com/myproparti-blip/My-pro-backend/internal/geo"
	"github.com/myproparti-blip/My-pro-backend/internal/handlers"
	"github.com/myproparti-blip/My-pro-backend/internal/logger"
	"github.com/myproparti-blip/My-pro-backend/internal/middleware"
	"github.com/myproparti-blip/My-pro-backend/internal/otp"
	"github.com/myproparti-blip/My-pro-backend/internal/routes"
	"github.com/myproparti-blip/My-pro-backend/internal/services"
	"github.com/myproparti-blip/My-pro-backend/internal/sms"
	"github.com/myproparti-blip/My-pro-backend/internal/storage"
	"github.com/myproparti-blip/My-pro-backend/ws"
)

// Run boots the whole service: config, database, collaborators, router.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	router, err := SetupRouter(cfg, db)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// SetupRouter assembles the engine with every collaborator wired in.
// Split from Run so tests can build a router against their own database.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	manager := ws.NewManager()
	go manager.Run()

	container := services.NewServiceContainer(
		otpStoreFor(cfg),
		smsProviderFor(cfg),
		geo.NewClient(cfg),
		manager,
	)
	appHandlers := handlers.NewAppHandlers(container, store)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
		middleware.DBMiddleware(db),
	)

	uploadsDir := ""
	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		uploadsDir = cfg.Storage.BasePath
	}
	routes.Register(router, appHandlers, container, manager, uploadsDir)

	return router, nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.Server.Env == "production" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}
	return gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
}

func otpStoreFor(cfg *config.Config) otp.Store {
	if cfg.Redis.Addr == "" {
		return otp.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	logger.Info("otp store backed by redis", "addr", cfg.Redis.Addr)
	return otp.NewRedisStore(client)
}

func smsProviderFor(cfg *config.Config) sms.Provider {
	if !cfg.SMS.Enabled {
		logger.Warn("sms delivery disabled, codes are echoed in responses")
		return sms.DisabledProvider{}
	}
	return sms.NewFast2SMSProvider(cfg)
}
