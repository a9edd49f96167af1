package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"teecha_backend/internals/configs"
	database "teecha_backend/internals/databases"
	authRepo "teecha_backend/internals/features/users/auth/repository"
	scheduler "teecha_backend/internals/features/users/auth/scheduler"
	helperAuth "teecha_backend/internals/helpers/auth"
	"teecha_backend/internals/helpers/reporter"
	middlewares "teecha_backend/internals/middlewares"
	routes "teecha_backend/internals/route"
	"teecha_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	reporter.Init()
	defer reporter.Close()

	app := fiber.New(middlewares.ProxyConfig(fiber.Config{
		AppName:               configs.AppName,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          middlewares.ErrorHandler,
		BodyLimit:             10 * 1024 * 1024,
		DisableStartupMessage: true,
	}, configs.TrustedProxies))

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if configs.GetEnvBool("DB_AUTO_MIGRATE", true) {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("❌ AutoMigrate failed: %v", err)
		}
	}
	if configs.GetEnvBool("SEED_ON_START", false) {
		seeds.RunAllSeeds(database.DB)
	}

	rdb := database.ConnectRedis()

	// ⏱ cleanup after DB is ready
	cleanup, err := scheduler.StartCleanupScheduler(&scheduler.Cleanup{
		Users:   authRepo.NewUserRepository(database.DB),
		Purgers: []scheduler.Purger{helperAuth.NewGormBlacklist(database.DB, configs.JWTSecret)},
	})
	if err != nil {
		log.Printf("[WARN] cleanup scheduler not started: %v", err)
	}

	routes.SetupRoutes(app, database.DB, rdb)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: app, cron, redis, pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if cleanup != nil {
		<-cleanup.Stop().Done()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	database.Close()
}
